package api

import (
	"fmt"
	"net/http"
)

// RequestError is a client-facing failure carrying the HTTP status to answer with.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(format string, args ...any) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

const (
	msgContentType    = "Content-Type must be application/json"
	msgInvalidJSON    = "invalid JSON body"
	msgNotObject      = "request body must be a JSON object"
	msgNotNumeric     = "values must be numeric"
	msgBodyTooLarge   = "request body too large"
	msgInternalError  = "internal server error"
	msgNotFound       = "not found"
	msgMethodNotAllow = "method not allowed"
)

type errorResponse struct {
	Error string `json:"error"`
}

type internalErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
