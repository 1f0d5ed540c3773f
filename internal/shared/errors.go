package shared

import (
	"errors"
	"fmt"
)

// Business status codes carried inside the response envelope. The HTTP
// transport stays 200 for these; the envelope code is the real status.
const (
	CodeSuccess   = 200
	CodeNotFound  = 205
	CodeDuplicate = 206

	CodeInvalidParams     = 1000
	CodeUserExists        = 1001
	CodeCaptchaInvalid    = 1002
	CodeBadCredentials    = 1003
	CodeUserNotFound      = 1004
	CodeNoAuthorization   = 1101
	CodeSessionSuperseded = 1102
	CodeNoPermission      = 1103
	CodeTokenInvalid      = 1104
)

var codeMessages = map[int]string{
	CodeNotFound:          "resource not found",
	CodeDuplicate:         "duplicate resource",
	CodeInvalidParams:     "invalid parameters",
	CodeUserExists:        "user already exists",
	CodeCaptchaInvalid:    "captcha code incorrect",
	CodeBadCredentials:    "incorrect username or password",
	CodeUserNotFound:      "user does not exist",
	CodeNoAuthorization:   "login invalid or no permission",
	CodeSessionSuperseded: "login identity expired",
	CodeNoPermission:      "insufficient permission",
	CodeTokenInvalid:      "invalid token",
}

// APIError is a business-level failure with a taxonomy code. Clients must
// not retry these; infrastructure errors stay plain errors and surface as
// HTTP 5xx instead.
type APIError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError from a taxonomy code.
func NewAPIError(code int) *APIError {
	msg, ok := codeMessages[code]
	if !ok {
		msg = "request failed"
	}
	return &APIError{Code: code, Message: msg}
}

// Shared business failures raised by the core components.
var (
	ErrNotFound          = NewAPIError(CodeNotFound)
	ErrDuplicate         = NewAPIError(CodeDuplicate)
	ErrInvalidParams     = NewAPIError(CodeInvalidParams)
	ErrCaptchaInvalid    = NewAPIError(CodeCaptchaInvalid)
	ErrBadCredentials    = NewAPIError(CodeBadCredentials)
	ErrUserNotFound      = NewAPIError(CodeUserNotFound)
	ErrNoAuthorization   = NewAPIError(CodeNoAuthorization)
	ErrSessionSuperseded = NewAPIError(CodeSessionSuperseded)
	ErrNoPermission      = NewAPIError(CodeNoPermission)
	ErrTokenInvalid      = NewAPIError(CodeTokenInvalid)
)

// AsAPIError unwraps err into an APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
