package cmd

import (
	"os"
	"os/exec"

	"github.com/arung-agamani/vagrant-inventory/internal/config"
	"github.com/arung-agamani/vagrant-inventory/internal/inventory"
	"github.com/arung-agamani/vagrant-inventory/internal/logging"
	"github.com/arung-agamani/vagrant-inventory/internal/vagrant"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	listInventory bool
	hostName      string

	configPath string
	projectDir string
	vagrantBin string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vagrant-inventory",
	Short: "Ansible dynamic inventory for running Vagrant machines",
	Long: `vagrant-inventory prints an Ansible dynamic inventory built from the
machines 'vagrant status' reports as running. Connection variables for each
machine come from 'vagrant ssh-config'.

  ansible-playbook -i vagrant-inventory site.yml
  vagrant-inventory --list
  vagrant-inventory --host web`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInventory,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// It exits with the status of a failed vagrant process, or 1 for any other error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCode(err))
	}
}

// ExitCode returns the exit status to report for err
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func init() {
	rootCmd.Flags().BoolVar(&listInventory, "list", false, "Print the inventory of all running machines")
	rootCmd.Flags().StringVar(&hostName, "host", "", "Print variables for a single host (always empty, hostvars are in _meta)")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "Vagrant project directory (default current directory)")
	rootCmd.PersistentFlags().StringVar(&vagrantBin, "vagrant", "", "Vagrant executable (default vagrant)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level on stderr: debug, info, warn or error")
}

func runInventory(cmd *cobra.Command, args []string) error {
	doc := inventory.Empty()

	if listInventory {
		env, err := loadEnvironment(cmd)
		if err != nil {
			return err
		}
		doc, err = inventory.Build(cmd.Context(), env.source)
		if err != nil {
			return err
		}
		env.log.V(1).Info("built inventory", "hosts", len(doc.Machines.Hosts))
	}

	return inventory.Write(cmd.OutOrStdout(), doc)
}

// environment is what a command needs to talk to vagrant
type environment struct {
	cfg    *config.Config
	log    logr.Logger
	source inventory.Source
}

// newSource creates the machine source for cfg. Tests replace it with a fake.
var newSource = func(cfg *config.Config, log logr.Logger) inventory.Source {
	client := vagrant.NewClient(
		vagrant.NewExecRunner(),
		vagrant.WithBinary(cfg.Vagrant),
		vagrant.WithProjectDir(cfg.ProjectDir),
		vagrant.WithLogger(log),
	)
	if log.V(1).Enabled() {
		if path, err := client.LookPath(); err != nil {
			log.V(1).Info("could not resolve vagrant executable", "error", err.Error())
		} else {
			log.V(1).Info("using vagrant executable", "path", path)
		}
	}
	return client
}

// loadEnvironment reads the configuration, applies the persistent flags on
// top of it and sets up logging on the command's stderr.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if projectDir != "" {
		cfg.ProjectDir = config.ExpandPath(projectDir)
	}
	if vagrantBin != "" {
		cfg.Vagrant = vagrantBin
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logging.Setup(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return &environment{
		cfg:    cfg,
		log:    log,
		source: newSource(cfg, log),
	}, nil
}
