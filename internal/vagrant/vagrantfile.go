package vagrant

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cjlapao/common-go/helper"
	"github.com/pkg/errors"
)

// VagrantfileName is the file vagrant reads in a project directory
const VagrantfileName = "Vagrantfile"

var (
	privateNetworkRegex = regexp.MustCompile(`private_network.*(192\.168\.\d+\.\d+)`)
	defineRegex         = regexp.MustCompile(`config\.vm\.define\s*\(?\s*(?:"([^"]+)"|'([^']+)'|:([A-Za-z_]\w*))`)
)

// ReadVagrantfile returns the contents of the Vagrantfile in dir
func ReadVagrantfile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, VagrantfileName)
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrapf(err, "no %s in %s", VagrantfileName, dir)
	}
	b, err := helper.ReadFromFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(b), nil
}

// PrivateNetwork returns the /24 network address of the first 192.168.x.x
// private_network declared in a Vagrantfile, e.g. 192.168.56.0.
func PrivateNetwork(vagrantfile string) (string, bool) {
	m := privateNetworkRegex.FindStringSubmatch(vagrantfile)
	if m == nil {
		return "", false
	}
	octets := strings.Split(m[1], ".")
	octets[3] = "0"
	return strings.Join(octets, "."), true
}

// DefinedMachines returns the names given to config.vm.define, in file order
func DefinedMachines(vagrantfile string) []string {
	machines := []string{}
	for _, m := range defineRegex.FindAllStringSubmatch(vagrantfile, -1) {
		for _, name := range m[1:] {
			if name != "" {
				machines = append(machines, name)
				break
			}
		}
	}
	return machines
}
