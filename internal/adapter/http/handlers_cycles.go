package adapthttp

import (
	"net/http"

	"temptrack/internal/domain"
)

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	cycles, err := s.svc.Cycles.ListCycles(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cycles})
}

type dayBody struct {
	Day domain.Date `json:"day"`
}

func (s *Server) handleCycleStart(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	var body dayBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	created, err := s.svc.Cycles.StartCycle(r.Context(), body.Day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "created": created, "day": body.Day})
}

func (s *Server) handleCycleDelete(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	var body dayBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	deleted, err := s.svc.Cycles.DeleteStart(r.Context(), body.Day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleCycleCurrent(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	today := s.today()
	a, err := s.svc.Cycles.Current(r.Context(), today)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "current": a})
}

func (s *Server) handleCyclePhase(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	day, err := dayQuery(r, "day", s.today())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	a, err := s.svc.Cycles.PhaseFor(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCycleStats(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	stats, err := s.svc.Cycles.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCyclePrediction(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	today := s.today()
	p, err := s.svc.Cycles.Predict(r.Context(), today)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "prediction": p})
}
