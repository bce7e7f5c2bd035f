package vagrant

import (
	"regexp"
	"strings"

	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
)

// The patterns below mirror the text vagrant prints; they are searched, not
// anchored, so keep them exactly as they are.
var runningRegex = regexp.MustCompile(`([^\s]+)[\s]+running \(.+`)

const (
	keyHostName     = "HostName"
	keyUser         = "User"
	keyIdentityFile = "IdentityFile"
	keyPort         = "Port"
)

var sshConfigRegexes = map[string]*regexp.Regexp{
	keyHostName:     sshConfigRegex(keyHostName),
	keyUser:         sshConfigRegex(keyUser),
	keyIdentityFile: sshConfigRegex(keyIdentityFile),
	keyPort:         sshConfigRegex(keyPort),
}

func sshConfigRegex(key string) *regexp.Regexp {
	return regexp.MustCompile(`\s*` + regexp.QuoteMeta(key) + ` (.*)\n`)
}

// ParseStatus returns the names of the machines `vagrant status` reports as
// running, in output order. Lines that do not look like a running machine are
// skipped and duplicates are kept.
func ParseStatus(output string) []string {
	machines := []string{}
	for _, line := range strings.Split(output, "\n") {
		if m := runningRegex.FindStringSubmatch(line); m != nil {
			machines = append(machines, m[1])
		}
	}
	return machines
}

// ParseSSHConfig extracts the connection variables from `vagrant ssh-config`
// output. A key with no line of its own is left nil.
func ParseSSHConfig(output string) inventory.HostVars {
	return inventory.HostVars{
		Host:           sshConfigValue(keyHostName, output),
		User:           sshConfigValue(keyUser, output),
		PrivateKeyFile: sshConfigValue(keyIdentityFile, output),
		Port:           sshConfigValue(keyPort, output),
	}
}

func sshConfigValue(key, output string) *string {
	m := sshConfigRegexes[key].FindStringSubmatch(output)
	if m == nil {
		return nil
	}
	value := strings.TrimSpace(m[1])
	return &value
}
