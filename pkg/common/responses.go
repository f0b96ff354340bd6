package common

import (
	"encoding/json"
	"net/http"
)

// RespondText sends a plain-text response. The chat surface is text in,
// text out; markers inside the body are interpreted by the browser UI.
func RespondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// RespondJSON sends a JSON response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ExtractRequestID extracts the request id propagated by the gateway or
// the RequestID middleware.
func ExtractRequestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Amzn-Trace-Id"); id != "" {
		return id
	}
	return ""
}
