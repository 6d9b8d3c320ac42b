package adapthttp

import (
	"fmt"
	"net/http"

	"temptrack/internal/app"
	"temptrack/internal/domain"
)

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 50)
		items, err := s.svc.Notes.ListRecent(ctx, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Day      domain.Date `json:"day"`
			Category string      `json:"category"`
			Text     string      `json:"text"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, err := s.svc.Notes.Add(ctx, body.Day, domain.NoteCategory(body.Category), body.Text)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNotesDelete(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.ID <= 0 {
		writeServiceError(w, fmt.Errorf("%w: id is required", app.ErrValidation))
		return
	}
	deleted, err := s.svc.Notes.Delete(r.Context(), body.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
