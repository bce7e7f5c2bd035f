package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// MachinesGroup is the group every running machine is placed in
	MachinesGroup = "machines"
	// UngroupedGroup is Ansible's implicit group for hosts with no other group
	UngroupedGroup = "ungrouped"
)

// HostVars holds the connection variables Ansible needs to reach one machine.
// A nil field is rendered as JSON null.
type HostVars struct {
	Host           *string `json:"ansible_host"`
	User           *string `json:"ansible_user"`
	PrivateKeyFile *string `json:"ansible_ssh_private_key_file"`
	Port           *string `json:"ansible_ssh_port"`
}

// Meta is the reserved _meta section of a dynamic inventory
type Meta struct {
	HostVars map[string]HostVars `json:"hostvars"`
}

// ChildGroup lists the child groups of a group
type ChildGroup struct {
	Children []string `json:"children"`
}

// HostGroup lists the hosts of a group
type HostGroup struct {
	Hosts []string `json:"hosts"`
}

// Document is the JSON document printed for `--list` and `--host`.
type Document struct {
	Meta     Meta        `json:"_meta"`
	All      *ChildGroup `json:"all,omitempty"`
	Machines *HostGroup  `json:"machines,omitempty"`
}

// Source provides the running machines and their connection variables
type Source interface {
	ListRunningMachines(ctx context.Context) ([]string, error)
	FetchConnectionVars(ctx context.Context, id string) (HostVars, error)
}

// Empty returns the minimal inventory document with no hosts.
func Empty() *Document {
	return &Document{
		Meta: Meta{HostVars: map[string]HostVars{}},
	}
}

// Assemble builds the full inventory document from the machine identifiers and
// their host variables. The machines group keeps ids exactly as given.
func Assemble(ids []string, hostvars map[string]HostVars) *Document {
	doc := Empty()
	for id, vars := range hostvars {
		doc.Meta.HostVars[id] = vars
	}

	hosts := make([]string, len(ids))
	copy(hosts, ids)

	doc.All = &ChildGroup{Children: []string{MachinesGroup, UngroupedGroup}}
	doc.Machines = &HostGroup{Hosts: hosts}
	return doc
}

// Build lists the running machines of src and fetches the connection variables
// of each, one after another in list order.
func Build(ctx context.Context, src Source) (*Document, error) {
	ids, err := src.ListRunningMachines(ctx)
	if err != nil {
		return nil, err
	}

	hostvars := make(map[string]HostVars, len(ids))
	for _, id := range ids {
		vars, err := src.FetchConnectionVars(ctx, id)
		if err != nil {
			return nil, err
		}
		hostvars[id] = vars
	}

	return Assemble(ids, hostvars), nil
}

// Write renders doc as JSON indented with two spaces, followed by a newline
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	return nil
}

// StringPtr returns a pointer to s. Handy when building HostVars by hand.
func StringPtr(s string) *string {
	return &s
}
