// Package api implements the HTTP handlers of the exchange-rate dashboard.
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// Machine-readable error keys.
const (
	errKeyUnconfigured     = "unconfigured"
	errKeyRateLimit        = "rate_limit"
	errKeyBadResponse      = "bad_response"
	errKeyTransport        = "transport_error"
	errKeyInvalidPair      = "invalid_pair"
	errKeyInvalidTime      = "invalid_time"
	errKeyInvalidRequest   = "invalid_request"
	errKeyStoreUnavailable = "store_unavailable"
	errKeyInternal         = "internal_error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"rate_limit"`
	Message string `json:"message" example:"Provider rate limit reached, try again in a minute."`
}

// NewsErrorResponse is the error envelope of the news proxy.
type NewsErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"News API key is not configured."`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, key, message string) {
	writeJSON(w, status, ErrorResponse{Error: key, Message: message})
}

// formatTS renders a stored timestamp as ISO-8601 UTC.
func formatTS(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
