package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultSSHUser = "vagrant"

var sshCmd = &cobra.Command{
	Use:   "ssh [machine]",
	Short: "Connect to a running machine using the standard SSH client",
	Long: `Connect to a running Vagrant machine with OpenSSH, using the same
connection variables the inventory hands to Ansible.

Direct connect: vagrant-inventory ssh <machine>
Pick a machine:  vagrant-inventory ssh
Supports SSH tunneling with --tunnel flag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			machines, err := env.source.ListRunningMachines(ctx)
			if err != nil {
				return err
			}
			if len(machines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No running machines found.")
				return nil
			}
			name, err = selectMachine(machines)
			if err != nil {
				return errors.Wrap(err, "prompt failed")
			}
		}

		vars, err := env.source.FetchConnectionVars(ctx, name)
		if err != nil {
			return err
		}
		if vars.Host == nil {
			return errors.Errorf("ssh-config of %s has no HostName", name)
		}

		sshArgs := buildSSHArgs(vars, tunnelTarget)
		env.log.V(1).Info("starting ssh", "machine", name, "args", sshArgs)
		if tunnelTarget != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Forwarding %s through %s\n", tunnelTarget, name)
		}

		err = runSSH(cmd, sshArgs)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
			// Suppress status 130 (SIGINT/Ctrl+C)
			return nil
		}
		return err
	},
}

var tunnelTarget string

func init() {
	sshCmd.Flags().StringVar(&tunnelTarget, "tunnel", "", "Tunnel in format localPort:remoteHost:remotePort (optional)")
	rootCmd.AddCommand(sshCmd)
}

// selectMachine asks the user to pick one of machines. Tests replace it.
var selectMachine = func(machines []string) (string, error) {
	prompt := promptui.Select{
		Label: "Select machine",
		Items: machines,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(machines[index]), strings.ToLower(input))
		},
	}
	_, name, err := prompt.Run()
	return name, err
}

// runSSH runs the ssh client attached to the command's terminal. Tests replace it.
var runSSH = func(cmd *cobra.Command, args []string) error {
	sshExec := exec.Command("ssh", args...)
	sshExec.Stdin = cmd.InOrStdin()
	sshExec.Stdout = cmd.OutOrStdout()
	sshExec.Stderr = cmd.ErrOrStderr()
	return sshExec.Run()
}

// buildSSHArgs turns connection variables into ssh client arguments. Host key
// checks are disabled the same way `vagrant ssh-config` does.
func buildSSHArgs(vars inventory.HostVars, tunnel string) []string {
	user := defaultSSHUser
	if vars.User != nil && *vars.User != "" {
		user = *vars.User
	}

	var sshArgs []string
	if tunnel != "" {
		sshArgs = append(sshArgs, "-L", tunnel)
	}
	if vars.PrivateKeyFile != nil && *vars.PrivateKeyFile != "" {
		sshArgs = append(sshArgs, "-i", strings.Trim(*vars.PrivateKeyFile, `"`))
	}
	if vars.Port != nil && *vars.Port != "" && *vars.Port != "22" {
		sshArgs = append(sshArgs, "-p", *vars.Port)
	}
	sshArgs = append(sshArgs,
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		fmt.Sprintf("%s@%s", user, *vars.Host),
	)
	return sshArgs
}
