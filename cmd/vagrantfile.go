package cmd

import (
	"fmt"

	"github.com/arung-agamani/vagrant-inventory/internal/vagrant"
	"github.com/spf13/cobra"
)

var vagrantfileCmd = &cobra.Command{
	Use:   "vagrantfile",
	Short: "Inspect the Vagrantfile of the project directory",
}

var vagrantfileNetworkCmd = &cobra.Command{
	Use:   "network",
	Short: "Print the 192.168.x.0 network of the first private_network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}
		content, err := vagrant.ReadVagrantfile(env.cfg.ProjectDir)
		if err != nil {
			return err
		}

		network, ok := vagrant.PrivateNetwork(content)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No 192.168.x.x private_network found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), network)
		return nil
	},
}

var vagrantfileMachinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List the machines defined with config.vm.define",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}
		content, err := vagrant.ReadVagrantfile(env.cfg.ProjectDir)
		if err != nil {
			return err
		}

		machines := vagrant.DefinedMachines(content)
		if len(machines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No machines defined.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Defined machines:")
		for _, name := range machines {
			fmt.Fprintln(cmd.OutOrStdout(), "-", name)
		}
		return nil
	},
}

func init() {
	vagrantfileCmd.AddCommand(vagrantfileNetworkCmd)
	vagrantfileCmd.AddCommand(vagrantfileMachinesCmd)
	rootCmd.AddCommand(vagrantfileCmd)
}
