package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response. Code mirrors the HTTP status.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// OK wraps data in a 200 envelope. data may be nil.
func OK(data any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   Envelope{Code: http.StatusOK, Message: "success", Data: data},
	}
}

// Fail renders an error envelope with the given status and user-facing message.
func Fail(status int, message string) Response {
	return jsonResponse{
		status: status,
		body:   Envelope{Code: status, Message: message},
	}
}
