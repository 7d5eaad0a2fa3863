// Package httpapi is the emulator's HTTP surface: the identity endpoints
// and the data endpoints of the path-addressed JSON tree.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// serviceError mirrors the hosted service's failure payload:
// {"error":{"message":"..."}}.
type serviceError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func writeServiceError(w http.ResponseWriter, status int, message string) {
	var se serviceError
	se.Error.Message = message
	writeJSON(w, status, se)
}
