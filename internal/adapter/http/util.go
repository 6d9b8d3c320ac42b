package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strconv"

	"temptrack/internal/app"
	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps service errors to status codes: bad input is 400,
// missing cycle history is 404 and anything else is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidUnit),
		errors.Is(err, domain.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, cycle.ErrNoCycleData), errors.Is(err, cycle.ErrInsufficientHistory):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error(), "reason": "not_enough_data"})
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func unitQuery(r *http.Request) (domain.Unit, error) {
	v := r.URL.Query().Get("unit")
	if v == "" {
		return domain.Celsius, nil
	}
	return domain.ParseUnit(v)
}

// dayQuery parses ?key=YYYY-MM-DD, defaulting to fallback when absent.
func dayQuery(r *http.Request, key string, fallback domain.Date) (domain.Date, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	return domain.ParseDate(v)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) bool {
	if r.Method == allowed {
		return false
	}
	w.Header().Set("Allow", allowed)
	w.WriteHeader(http.StatusMethodNotAllowed)
	return true
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")
	pages := map[string]string{
		"/charts":   path.Join(dir, "charts.html"),
		"/analysis": path.Join(dir, "analysis.html"),
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}
		if page, ok := pages[reqPath]; ok {
			if _, err := os.Stat(page); err == nil {
				http.ServeFile(w, r, page)
				return
			}
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
