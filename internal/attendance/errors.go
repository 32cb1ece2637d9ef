package attendance

import (
	"errors"
	"net/http"
)

// Code classifies an operation failure.
type Code string

const (
	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeMissingFields    Code = "MISSING_FIELDS"
	CodeInvalidField     Code = "INVALID_FIELD"
	CodeInvalidTimestamp Code = "INVALID_TIMESTAMP"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeWriteFailed      Code = "WRITE_FAILED"
)

// Error is a classified service error. Client-caused codes carry a
// message safe to return to the caller; server-caused codes carry a
// generic message, the underlying detail is only logged.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

func errInvalidRequest(msg string) *Error   { return &Error{Code: CodeInvalidRequest, Message: msg} }
func errMissingFields(msg string) *Error    { return &Error{Code: CodeMissingFields, Message: msg} }
func errInvalidField(msg string) *Error     { return &Error{Code: CodeInvalidField, Message: msg} }
func errInvalidTimestamp(msg string) *Error { return &Error{Code: CodeInvalidTimestamp, Message: msg} }
func errStoreUnavailable(msg string) *Error { return &Error{Code: CodeStoreUnavailable, Message: msg} }
func errWriteFailed(msg string) *Error      { return &Error{Code: CodeWriteFailed, Message: msg} }

// httpStatus maps a service error to a response status. Validation
// failures are the caller's fault; everything else is a server error.
func httpStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Code {
		case CodeInvalidRequest, CodeMissingFields, CodeInvalidField, CodeInvalidTimestamp:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
