package vagrant

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Runner executes an external command in dir and returns its standard output
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands as local processes
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args and waits for it to finish. When the process
// fails the returned error keeps the *exec.ExitError in its chain and carries
// whatever the process wrote to stderr.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdOut, stdErr bytes.Buffer
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stdErr.String()); msg != "" {
			return stdOut.String(), errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
		}
		return stdOut.String(), errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}

	return stdOut.String(), nil
}
