// Package httpx provides the unified response envelope shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Envelope is the unified response body. Business failures keep HTTP 200
// and carry their real status in Code; only infrastructure failures use
// HTTP 5xx so clients know retrying may help.
type Envelope struct {
	Code      int    `json:"code"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK sends a success envelope.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Code: shared.CodeSuccess, Data: data, Message: "ok"})
}

// OKMessage sends a success envelope with a custom message.
func OKMessage(w http.ResponseWriter, data any, msg string) {
	write(w, http.StatusOK, Envelope{Code: shared.CodeSuccess, Data: data, Message: msg})
}

// Error maps an error to the envelope. APIErrors travel over HTTP 200 with
// their taxonomy code; anything else is an infrastructure failure.
func Error(w http.ResponseWriter, err error) {
	if apiErr, ok := shared.AsAPIError(err); ok {
		write(w, http.StatusOK, Envelope{Code: apiErr.Code, Message: apiErr.Message})
		return
	}
	write(w, http.StatusInternalServerError, Envelope{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}

// DecodeJSON decodes a JSON request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
