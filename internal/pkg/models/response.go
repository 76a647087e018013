package models

import "encoding/json"

// APIError is the error half of the response envelope
type APIError struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	SubErrors []string `json:"subErrors"`
}

// APIResponse is the uniform envelope returned by every auth endpoint.
// A response is successful only when the HTTP status is 2xx and Data is non-null.
type APIResponse struct {
	TimeStamp string          `json:"timeStamp"`
	Data      json.RawMessage `json:"data"`
	Error     *APIError       `json:"error"`
}
