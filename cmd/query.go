package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [path]",
	Short: "Query the generated inventory with jq-like syntax",
	Long: `Build the inventory of running machines and print the value at a path.

Examples:
  vagrant-inventory query                                  # List top-level keys
  vagrant-inventory query _meta.hostvars.web.ansible_host
  vagrant-inventory query machines.hosts.[0]
  vagrant-inventory query machines.hosts.[*]`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}

		doc, err := inventory.Build(cmd.Context(), env.source)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		var path string
		if len(args) > 0 {
			path = args[0]
		}

		if path == "" {
			keys, err := inventory.List(doc, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Available top-level keys:")
			for _, key := range keys {
				fmt.Fprintln(out, "-", key)
			}
			return nil
		}

		result, err := inventory.Query(doc, path)
		if err != nil {
			return fmt.Errorf("query %s: %w", path, err)
		}

		switch v := result.(type) {
		case nil:
			fmt.Fprintln(out, "null")
		case string:
			fmt.Fprintln(out, v)
		case map[string]interface{}, []interface{}:
			jsonBytes, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				fmt.Fprintf(out, "%v\n", v)
			} else {
				fmt.Fprintln(out, string(jsonBytes))
			}
		default:
			fmt.Fprintf(out, "%v\n", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
