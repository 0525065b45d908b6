package models

import "encoding/json"

// Envelope is the wrapper both upstream APIs put around their payloads.
// A response is usable only when Success is 1 and Value is present.
type Envelope struct {
	Success int             `json:"Success"`
	Value   json.RawMessage `json:"Value"`
}

// Valid reports whether the envelope carries a usable payload.
func (e *Envelope) Valid() bool {
	return e.Success == 1 && len(e.Value) > 0 && string(e.Value) != "null"
}

// SearchOption is one entry of the browser-facing searches list.
type SearchOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// APIResponse is the browser-facing JSON payload. The HTTP status is
// always 200; Success carries the real outcome.
type APIResponse struct {
	Success bool   `json:"success"`
	Content any    `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

func SuccessResponse(content any) APIResponse {
	return APIResponse{Success: true, Content: content}
}

func FailureResponse(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
