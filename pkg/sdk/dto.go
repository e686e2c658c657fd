// Package sdk defines the wire types of the SmartPick HTTP API and a Go
// client for talking to it.
package sdk

import "encoding/json"

// StatusType labels an API response outcome
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a JSON string
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

// PostMessageRequest submits one user utterance
type PostMessageRequest struct {
	Text string `json:"text"`
}

// PostMessageResponse is the outcome of one turn
type PostMessageResponse struct {
	Reply     string `json:"reply"`
	HTML      string `json:"html"`
	SessionID int64  `json:"session_id"`
	Failed    bool   `json:"failed"`
}

// SessionSummary is one entry of the session history listing
type SessionSummary struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Turns     int    `json:"turns"`
}

// TranscriptMessage is one message of a session transcript snapshot
type TranscriptMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}
