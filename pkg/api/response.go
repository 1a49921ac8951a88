package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the error body returned by every endpoint.
type Response struct {
	Error string `json:"error"`
}

// WriteJSONResponse encodes v as the JSON body with the given status.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "failed to encode JSON response", slog.Any("error", err))
	}
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, Response{Error: message})
}
