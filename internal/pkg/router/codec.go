package router

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
)

// Message is a response carrying nothing but its message.
type Message string

func (m Message) Message() string { return string(m) }

type errorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func failure(msg string, fields map[string]string) errorResponse {
	return errorResponse{Success: false, Message: msg, Errors: fields}
}

func writeError(w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		writeJSON(w, http.StatusInternalServerError, failure("Internal server error", nil))
		return
	}

	writeJSON(w, gerr.StatusCode(), failure(gerr.Msg(), gerr.Fields()))
}

// writeSuccess flattens resp into the envelope: its JSON object fields sit
// next to "success" and "message". Non-object bodies go under "data".
func writeSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	msg := "Request processed successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	body := map[string]any{}
	if _, isMsg := resp.(Message); resp != nil && !isMsg {
		raw, err := json.Marshal(resp)
		if err != nil {
			slog.Error("failed to encode response", "error", err)
			writeJSON(w, http.StatusInternalServerError, failure("Internal server error", nil))
			return
		}

		var fields map[string]json.RawMessage
		if json.Unmarshal(raw, &fields) == nil {
			for k, v := range fields {
				body[k] = v
			}
		} else if string(raw) != "null" {
			body["data"] = json.RawMessage(raw)
		}
	}

	body["success"] = true
	body["message"] = msg

	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
