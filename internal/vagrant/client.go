package vagrant

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
	"github.com/cjlapao/common-go/commands"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// DefaultBinary is the vagrant executable looked up on PATH
const DefaultBinary = "vagrant"

var installFolders = []string{"/usr/local/bin", "/usr/bin", "/bin", "/opt/homebrew/bin", "/opt/vagrant/bin"}

// Client talks to the vagrant CLI of a single project directory
type Client struct {
	runner Runner
	binary string
	dir    string
	log    logr.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBinary sets the vagrant executable to run
func WithBinary(binary string) ClientOption {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithProjectDir sets the directory vagrant is run in. Empty means the
// current working directory.
func WithProjectDir(dir string) ClientOption {
	return func(c *Client) {
		c.dir = dir
	}
}

// WithLogger sets the logger used for command tracing
func WithLogger(log logr.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client backed by runner
func NewClient(runner Runner, opts ...ClientOption) *Client {
	c := &Client{
		runner: runner,
		binary: DefaultBinary,
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectDir returns the directory vagrant commands run in
func (c *Client) ProjectDir() string {
	return c.dir
}

// ListRunningMachines runs `vagrant status` and returns the running machines
// in the order vagrant lists them.
func (c *Client) ListRunningMachines(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "status")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vagrant machines")
	}

	machines := ParseStatus(out)
	c.log.V(1).Info("listed running machines", "count", len(machines), "machines", machines)
	return machines, nil
}

// FetchConnectionVars runs `vagrant ssh-config <id>` and extracts the host,
// user, identity file and port. Missing keys are left nil.
func (c *Client) FetchConnectionVars(ctx context.Context, id string) (inventory.HostVars, error) {
	out, err := c.run(ctx, "ssh-config", id)
	if err != nil {
		return inventory.HostVars{}, errors.Wrapf(err, "failed to read ssh-config of %s", id)
	}

	vars := ParseSSHConfig(out)
	if vars.Host == nil {
		c.log.Info("ssh-config has no HostName", "machine", id)
	}
	return vars, nil
}

// LookPath resolves the configured vagrant binary to an absolute path. It asks
// `which` first and falls back to the usual install folders.
func (c *Client) LookPath() (string, error) {
	if filepath.IsAbs(c.binary) {
		if _, err := os.Stat(c.binary); err != nil {
			return "", errors.Wrapf(err, "vagrant executable %s", c.binary)
		}
		return c.binary, nil
	}

	out, err := commands.ExecuteWithNoOutput("which", c.binary)
	path := strings.ReplaceAll(strings.TrimSpace(out), "\n", "")
	if err == nil && path != "" {
		return path, nil
	}
	c.log.V(1).Info("vagrant not found with which, trying default locations", "binary", c.binary)

	for _, folder := range installFolders {
		candidate := filepath.Join(folder, c.binary)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("vagrant executable %q not found", c.binary)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	c.log.V(1).Info("running vagrant", "binary", c.binary, "args", args, "dir", c.dir)
	return c.runner.Run(ctx, c.dir, c.binary, args...)
}
