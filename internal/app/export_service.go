package app

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"temptrack/internal/cycle"
)

var csvHeader = []string{"date", "temperature_celsius", "phase_label", "notes_concatenated"}

// ExportService renders the history for download.
type ExportService struct {
	history HistoryReader
	engine  cycle.Engine
}

// NewExportService creates an ExportService backed by the given history.
func NewExportService(history HistoryReader, engine cycle.Engine) *ExportService {
	return &ExportService{history: history, engine: engine}
}

// WriteCSV writes one row per reading, oldest first. The phase column is
// empty for readings logged before the first cycle start.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	h, err := LoadHistory(ctx, s.history)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range s.engine.Annotate(h) {
		rec := []string{
			row.Day.String(),
			strconv.FormatFloat(row.Celsius, 'f', 2, 64),
			string(row.Phase),
			cycle.JoinNotes(row.Notes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
