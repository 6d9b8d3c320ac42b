package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"temptrack/internal/app"
	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

// Status is the output of the status command. Current and Prediction are
// nil until a cycle start is recorded.
type Status struct {
	Today      domain.Date            `json:"today"`
	Counts     app.DataCounts         `json:"counts"`
	Current    *cycle.PhaseAssignment `json:"current"`
	Prediction *cycle.Prediction      `json:"prediction"`
	Cycles     cycle.CycleStats       `json:"cycles"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current cycle day, phase and prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts, today)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference day YYYY-MM-DD (default: current local day)")
	return cmd
}

func runStatus(cmd *cobra.Command, opts *RootOptions, todayFlag string) error {
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

	st, err := buildStatus(cmd.Context(), store, cycle.New(cfg.Cycle), today)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), opts.Format, st, func(w io.Writer) { printStatus(w, st) })
}

func buildStatus(ctx context.Context, store domain.Store, engine cycle.Engine, today domain.Date) (Status, error) {
	analysis, err := app.NewAnalysisService(store, engine).Summary(ctx, today)
	if err != nil {
		return Status{}, err
	}
	st := Status{Today: today, Counts: analysis.Counts, Cycles: analysis.Cycles}

	cycles := app.NewCycleService(store, engine)
	current, err := cycles.Current(ctx, today)
	switch {
	case errors.Is(err, cycle.ErrNoCycleData):
		return st, nil
	case err != nil:
		return Status{}, err
	}
	st.Current = &current

	prediction, err := cycles.Predict(ctx, today)
	if err != nil {
		return Status{}, err
	}
	st.Prediction = &prediction
	return st, nil
}

func printStatus(w io.Writer, st Status) {
	printf(w, "today:       %s\n", st.Today)
	printf(w, "readings:    %d  cycle starts: %d  notes: %d\n",
		st.Counts.Readings, st.Counts.CycleStarts, st.Counts.Notes)
	if st.Current == nil {
		printf(w, "no cycle start recorded yet\n")
		return
	}
	printf(w, "cycle day:   %d of ~%d (%s)\n", st.Current.CycleDay, st.Current.CycleLength, st.Current.Phase)
	p := st.Prediction
	printf(w, "next cycle:  %s (in %d days, %s confidence)\n", p.PredictedStart, p.DaysUntil, p.Confidence)
	printf(w, "ovulation:   %s to %s\n", p.OvulationStart, p.OvulationEnd)
	if st.Cycles.Count > 0 {
		printf(w, "avg length:  %.1f days over %d cycles\n", st.Cycles.AverageLength, st.Cycles.Count)
	}
}
