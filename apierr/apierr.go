// Package apierr defines the canonical error shape every API call resolves to.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Error codes produced on the client side. Server supplied codes pass through as-is.
const (
	CodeNetwork             = "NETWORK"
	CodeSessionExpired      = "SESSION_EXPIRED"
	CodeValidation          = "VALIDATION"
	CodeRateLimited         = "RATE_LIMITED"
	CodeLocationUnavailable = "LOCATION_UNAVAILABLE"
	CodeUnknown             = "UNKNOWN"
)

const (
	networkMessage  = "Unable to reach the server. Check your connection and try again."
	fallbackMessage = "Something went wrong. Please try again."
)

var defaultMessages = map[int]string{
	400: "Please check the information you entered.",
	401: "Your session has expired. Please log in again.",
	403: "You are not allowed to perform this action.",
	404: "The requested resource was not found.",
	409: "This action conflicts with existing data.",
	422: "Some fields contain invalid data.",
	429: "Too many attempts. Please wait and try again.",
	500: "Something went wrong on our end. Please try again later.",
}

// Error is the normalised form of every failure surfaced to callers.
// StatusCode is 0 when no HTTP response was received.
type Error struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	StatusCode  int               `json:"statusCode"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// DefaultMessage returns the human message used when the server supplies none.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	return fallbackMessage
}

// serverPayload is the error body shape the API returns.
type serverPayload struct {
	Code    string          `json:"code"`
	Message json.RawMessage `json:"message"`
	Errors  map[string]any  `json:"errors"`
}

// FromResponse builds the canonical error for a non-2xx response. The body is
// optional; when it carries a string message or an errors object those win
// over the per-status defaults.
func FromResponse(status int, body []byte) *Error {
	e := &Error{
		Code:       "HTTP_" + strconv.Itoa(status),
		Message:    DefaultMessage(status),
		StatusCode: status,
	}
	if len(body) == 0 {
		return e
	}

	var payload serverPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	if payload.Code != "" {
		e.Code = payload.Code
	}
	var msg string
	if err := json.Unmarshal(payload.Message, &msg); err == nil && msg != "" {
		e.Message = msg
	}
	if payload.Errors != nil {
		e.FieldErrors = make(map[string]string, len(payload.Errors))
		for field, v := range payload.Errors {
			e.FieldErrors[field] = fieldMessage(v)
		}
	}
	return e
}

// fieldMessage flattens the value of one entry of the server's errors object.
func fieldMessage(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return fieldMessage(t[0])
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Network wraps a transport failure where no response was received.
func Network(cause error) *Error {
	return &Error{
		Code:    CodeNetwork,
		Message: networkMessage,
		cause:   cause,
	}
}

// SessionExpired is surfaced when the access token could not be renewed.
func SessionExpired(cause error) *Error {
	return &Error{
		Code:       CodeSessionExpired,
		Message:    DefaultMessage(401),
		StatusCode: 401,
		cause:      cause,
	}
}

// Validation reports client-side input errors keyed by field name.
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:        CodeValidation,
		Message:     DefaultMessage(422),
		FieldErrors: fields,
	}
}

// New creates an error with an explicit code and message.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, StatusCode: status}
}

// Wrap is New with an underlying cause that stays reachable through errors.Is/As.
func Wrap(cause error, code, message string, status int) *Error {
	return &Error{Code: code, Message: message, StatusCode: status, cause: cause}
}

// From converts any error into the canonical shape. Errors that already
// carry an *Error anywhere in their chain are returned as that value.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Code: CodeUnknown, Message: err.Error(), cause: err}
}

// IsStatus reports whether err is a canonical error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsCode reports whether err is a canonical error with the given code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
