package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// GenericFallback is shown whenever a stage fails without a server-provided message.
const GenericFallback = "No se pudo procesar tu solicitud. Intenta nuevamente."

// ValidationError is detected locally, attributable to one field, and must
// block the workflow before any network call happens.
type ValidationError struct {
	Field   string
	Label   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, label, message string) *ValidationError {
	return &ValidationError{Field: field, Label: label, Message: message}
}

// ReservationError means the backend rejected the booking itself.
type ReservationError struct {
	Message string
}

func (e *ReservationError) Error() string {
	if e.Message == "" {
		return GenericFallback
	}
	return e.Message
}

// PaymentError means the payment rail rejected the order. FieldErrors carries
// per-field messages when the rail reports them.
type PaymentError struct {
	Message     string
	FieldErrors map[string][]string
}

func (e *PaymentError) Error() string {
	if len(e.FieldErrors) > 0 {
		return "Errores en los campos:\n" + FormatFieldErrors(e.FieldErrors)
	}
	if e.Message == "" {
		return GenericFallback
	}
	return e.Message
}

// NetworkError wraps a transport-level failure at whichever stage it occurred.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FormatFieldErrors renders field errors one per line as "field: msg, msg",
// in field-name order so the output is stable.
func FormatFieldErrors(fieldErrors map[string][]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", field, strings.Join(fieldErrors[field], ", ")))
	}
	return strings.Join(lines, "\n")
}
