// Package dto holds the request and response shapes shared between handlers
// and services. All responses carry a boolean success flag.
package dto

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
