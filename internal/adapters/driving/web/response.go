package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsecureSymlink):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encoding response: %v", err)
	}
}

// writeStatus writes the {"error": status} body.
func writeStatus(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]any{"error": status})
}

// writeError writes err as a JSON error. Internal errors are logged and
// never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("%s %s [%s]: %v", r.Method, r.URL.Path, requestID(r.Context()), err)
	} else {
		log.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeStatus(w, status)
}

// writeNotFound writes a 404 listing the other versions of a package the
// requested path exists in.
func writeNotFound(w http.ResponseWriter, suggestions []string) {
	body := map[string]any{"error": http.StatusNotFound}
	if len(suggestions) > 0 {
		body["suggestions"] = suggestions
	}
	writeJSON(w, http.StatusNotFound, body)
}
