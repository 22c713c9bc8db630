package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// respondJSON marshals payload before touching the writer so an encoding
// failure can still become a clean 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, response)
}

// respondRaw relays an already encoded JSON document.
func respondRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// respondError sends the route's fixed message to the caller and logs the
// underlying error with the request's trace id. 5xx are logged at ERROR,
// everything else at DEBUG.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, message string, err error) {
	traceID := TraceIDFromContext(r.Context())

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("user_message", message),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(r.Context(), level, "API error response", attrs...)

	respondJSON(w, status, ErrorResponse{Error: message, TraceID: traceID})
}
