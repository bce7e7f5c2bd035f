package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/arung-agamani/vagrant-inventory/internal/config"
	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

// fakeSource serves canned machines instead of running vagrant
type fakeSource struct {
	machines []string
	vars     map[string]inventory.HostVars
	err      error
}

func (f *fakeSource) ListRunningMachines(ctx context.Context) ([]string, error) {
	return f.machines, f.err
}

func (f *fakeSource) FetchConnectionVars(ctx context.Context, id string) (inventory.HostVars, error) {
	if f.err != nil {
		return inventory.HostVars{}, f.err
	}
	vars, ok := f.vars[id]
	if !ok {
		return inventory.HostVars{}, errors.New("machine not found: " + id)
	}
	return vars, nil
}

// sourceConfig records the configuration the last command resolved
type sourceConfig struct {
	cfg *config.Config
}

// useFakeSource points every command at src and resets flag state for the
// test. The config file is pointed at an empty temp dir so the user's own
// config is never read.
func useFakeSource(t *testing.T, src inventory.Source) *sourceConfig {
	t.Helper()

	recorded := &sourceConfig{}
	originalNewSource := newSource
	newSource = func(cfg *config.Config, log logr.Logger) inventory.Source {
		recorded.cfg = cfg
		return src
	}

	for _, key := range []string{config.EnvConfigPath, config.EnvProjectDir, config.EnvVagrant, config.EnvLogLevel} {
		t.Setenv(key, "")
	}

	resetFlags()
	t.Cleanup(func() {
		newSource = originalNewSource
		resetFlags()
	})

	configPath = filepath.Join(t.TempDir(), "config.yaml")
	return recorded
}

func resetFlags() {
	listInventory = false
	hostName = ""
	configPath = ""
	projectDir = ""
	vagrantBin = ""
	logLevel = ""
	tunnelTarget = ""

	// --help sticks to the flag set between executions
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
	}
}

// executeCommand executes a cobra command and returns its output and any error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	root.SetArgs(args)
	err := root.Execute()
	return b.String(), err
}

// executeCommandC is a helper function to execute a cobra command and capture its output.
func executeCommandC(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}
