package cli

import (
	"io"

	"github.com/spf13/cobra"

	"temptrack/internal/app"
	"temptrack/internal/domain"
)

// NewPurgeCommand creates the purge command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete history older than the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(cmd, rootOpts, today)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference day YYYY-MM-DD (default: current local day)")
	return cmd
}

func runPurge(cmd *cobra.Command, opts *RootOptions, todayFlag string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	today, err := parseToday(todayFlag)
	if err != nil {
		return err
	}
	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := app.NewRetentionService(store, cfg.RetentionDays)
	res, err := svc.Purge(cmd.Context(), today)
	if err != nil {
		return err
	}

	out := struct {
		Cutoff domain.Date        `json:"cutoff"`
		Purged domain.PurgeResult `json:"purged"`
	}{svc.Cutoff(today), res}
	return printResult(cmd.OutOrStdout(), opts.Format, out, func(w io.Writer) {
		printf(w, "purged before %s: %d readings, %d cycle starts, %d notes\n",
			out.Cutoff, res.Readings, res.CycleStarts, res.Notes)
	})
}

func parseToday(s string) (domain.Date, error) {
	if s == "" {
		return domain.Today(), nil
	}
	return domain.ParseDate(s)
}
