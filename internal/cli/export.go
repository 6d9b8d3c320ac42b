package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"temptrack/internal/app"
	"temptrack/internal/cycle"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every reading as CSV",
		Long: `Write one CSV row per reading, oldest first, with the derived phase
and the notes of the same day. Writes to stdout unless --output is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return runExport(cmd, rootOpts, w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, opts *RootOptions, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return app.NewExportService(store, cycle.New(cfg.Cycle)).WriteCSV(cmd.Context(), w)
}
