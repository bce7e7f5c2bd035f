package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load
const (
	EnvConfigPath = "VAGRANT_INVENTORY_CONFIG"
	EnvProjectDir = "VAGRANT_INVENTORY_PROJECT_DIR"
	EnvVagrant    = "VAGRANT_INVENTORY_VAGRANT"
	EnvLogLevel   = "VAGRANT_INVENTORY_LOG_LEVEL"
)

// DefaultPath is where the config file is looked up when no path is given
const DefaultPath = "~/.vagrant-inventory/config.yaml"

// Config holds all configuration for vagrant-inventory
type Config struct {
	Vagrant    string `yaml:"vagrant"`
	ProjectDir string `yaml:"project_dir"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Vagrant:   "vagrant",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in that order. An empty path means $VAGRANT_INVENTORY_CONFIG or
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := NewConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	if err := c.loadFile(ExpandPath(path)); err != nil {
		return nil, err
	}
	c.applyEnv()

	c.ProjectDir = ExpandPath(c.ProjectDir)
	return c, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "unmarshal %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvProjectDir); v != "" {
		c.ProjectDir = v
	}
	if v := os.Getenv(EnvVagrant); v != "" {
		c.Vagrant = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Return original path if we can't get home dir
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
