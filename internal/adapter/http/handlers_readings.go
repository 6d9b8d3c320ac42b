package adapthttp

import (
	"net/http"

	"temptrack/internal/domain"
)

func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		unit, err := unitQuery(r)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		limit := intQuery(r, "limit", 30)
		items, err := s.svc.Readings.ListRecent(ctx, limit, unit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "items": items})

	case http.MethodPut:
		var body struct {
			Day   domain.Date `json:"day"`
			Value float64     `json:"value"`
			Unit  string      `json:"unit"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		unit, err := domain.ParseUnit(body.Unit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		entry, err := s.svc.Readings.Record(ctx, body.Day, body.Value, unit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleReadingsDelete(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Day domain.Date `json:"day"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	deleted, err := s.svc.Readings.Delete(r.Context(), body.Day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
