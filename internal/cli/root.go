// Package cli implements the temptrack command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"temptrack/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Storage    string
	DSN        string
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the temptrack CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "temptrack",
		Short: "Basal body temperature and cycle tracker",
		Long: `temptrack logs basal body temperature, cycle starts and notes, and
derives cycle phases, statistics and next-cycle predictions from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "storage driver (sqlite|postgres|jsonfile|memory)")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "storage file path or connection string")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// loadConfig resolves the configuration: file, then environment, then
// command-line flags.
func loadConfig(opts *RootOptions) (config.Config, error) {
	return config.Load(opts.ConfigPath, config.Overrides{Driver: opts.Storage, DSN: opts.DSN})
}
