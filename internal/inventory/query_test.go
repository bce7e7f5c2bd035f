package inventory

import (
	"reflect"
	"testing"
)

func testDocument() *Document {
	return Assemble([]string{"web", "db"}, map[string]HostVars{
		"web": {
			Host:           StringPtr("127.0.0.1"),
			User:           StringPtr("vagrant"),
			PrivateKeyFile: StringPtr("/work/.vagrant/machines/web/virtualbox/private_key"),
			Port:           StringPtr("2222"),
		},
		"db": {
			Host: StringPtr("127.0.0.1"),
			User: StringPtr("vagrant"),
			Port: StringPtr("2200"),
		},
	})
}

func TestQuery(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name     string
		path     string
		expected interface{}
		wantErr  bool
	}{
		{
			name:     "host variable",
			path:     "_meta.hostvars.web.ansible_host",
			expected: "127.0.0.1",
		},
		{
			name:     "missing variable is null",
			path:     "_meta.hostvars.db.ansible_ssh_private_key_file",
			expected: nil,
		},
		{
			name:     "hosts by index",
			path:     "machines.hosts.[1]",
			expected: "db",
		},
		{
			name:     "hosts by keyed index",
			path:     "machines.hosts[0]",
			expected: "web",
		},
		{
			name:     "hosts wildcard",
			path:     "machines.hosts.[*]",
			expected: []interface{}{"web", "db"},
		},
		{
			name:     "children",
			path:     "all.children",
			expected: []interface{}{"machines", "ungrouped"},
		},
		{
			name:    "unknown host",
			path:    "_meta.hostvars.cache",
			wantErr: true,
		},
		{
			name:    "index out of bounds",
			path:    "machines.hosts.[5]",
			wantErr: true,
		},
		{
			name:    "index on object",
			path:    "_meta.[0]",
			wantErr: true,
		},
		{
			name:    "key on string",
			path:    "_meta.hostvars.web.ansible_host.value",
			wantErr: true,
		},
		{
			name:    "invalid index",
			path:    "machines.hosts.[x]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Query(doc, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Query() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Query() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestQuery_Root(t *testing.T) {
	result, err := Query(Empty(), "")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	expected := map[string]interface{}{
		"_meta": map[string]interface{}{
			"hostvars": map[string]interface{}{},
		},
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Query() = %v, want %v", result, expected)
	}
}

func TestList(t *testing.T) {
	doc := testDocument()

	keys, err := List(doc, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"_meta", "all", "machines"}) {
		t.Errorf("List() = %v", keys)
	}

	keys, err = List(doc, "_meta.hostvars")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"db", "web"}) {
		t.Errorf("List() = %v, want [db web]", keys)
	}

	if _, err := List(doc, "machines.hosts"); err == nil {
		t.Error("expected error listing keys of an array")
	}
}

func TestParsePath(t *testing.T) {
	segments, err := ParsePath("machines.hosts[*]")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}

	expected := []PathSegment{
		{Type: SegmentTypeKey, Key: "machines"},
		{Type: SegmentTypeKey, Key: "hosts"},
		{Type: SegmentTypeWildcard},
	}
	if !reflect.DeepEqual(segments, expected) {
		t.Errorf("ParsePath() = %+v, want %+v", segments, expected)
	}
}
