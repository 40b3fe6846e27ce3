// Package cli provides flag binding, option loading, and help formatting for
// the nuitkactl CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/nuitkactl/internal/config"
	"github.com/CodexForgeBR/nuitkactl/internal/registry"
	"github.com/CodexForgeBR/nuitkactl/internal/state"
)

// Options holds the global CLI options shared by every subcommand.
type Options struct {
	ConfigFile   string
	RegistryFile string
	Interpreter  string
	StateDir     string
	Verbose      bool
}

// BindFlags registers the global flags on the root command. The flags modify
// fields in the provided options pointer.
func BindFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a build configuration file (JSON)")
	flags.StringVar(&opts.RegistryFile, "registry", "", "Path to an alternative setting registry (JSON)")
	flags.StringVar(&opts.Interpreter, "interpreter", "", "Python interpreter used to invoke Nuitka (default: python)")
	flags.StringVar(&opts.StateDir, "state-dir", state.DefaultDir, "Directory for nuitkactl state (last build plan)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug output")
}

// ValidateFlags checks the global options after parsing.
func ValidateFlags(opts *Options) error {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}
	if opts.RegistryFile != "" {
		if _, err := os.Stat(opts.RegistryFile); err != nil {
			return fmt.Errorf("--registry: %w", err)
		}
	}
	return nil
}

// LoadRegistry returns the registry selected by the options: an explicit
// file when --registry is set, the memoized embedded registry otherwise.
func LoadRegistry(opts *Options) (*registry.Registry, error) {
	if opts.RegistryFile != "" {
		return registry.Load(opts.RegistryFile)
	}
	return registry.Default()
}

// LoadConfig returns a configuration manager holding the defaults, with the
// --config file deep-merged on top when one is set.
func LoadConfig(opts *Options) (*config.Manager, error) {
	m := config.New()
	if opts.ConfigFile != "" {
		if err := m.Load(opts.ConfigFile); err != nil {
			return nil, err
		}
	}
	return m, nil
}
