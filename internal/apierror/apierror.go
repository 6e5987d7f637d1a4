// Package apierror interprets error responses from the POSFacturaRD API and
// defines the error taxonomy the console works with: authentication failures,
// validation/business rejections, stock insufficiency and transport faults.
// Resource clients never swallow these — they propagate to the owning screen,
// which decides presentation.
package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated is returned by the gateway after a 401. By the time the
// caller sees it the session has already been cleared and the logout hook
// fired; screens only need to stop what they were doing.
var ErrUnauthenticated = errors.New("sesion expirada o no autenticada")

// APIError is the server's canonical 4xx/5xx envelope.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
}

func New(status int, detail string) *APIError {
	return &APIError{StatusCode: status, Detail: detail}
}

// ValidationError carries per-field rejections from the server, shown to the
// user verbatim.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Detail
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return e.Detail + ": " + strings.Join(parts, "; ")
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// TransportError marks network-level failures (DNS, refused connection,
// timeout) and 5xx responses without a decodable envelope. Never retried
// automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transporte: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is transport-level (as opposed to a
// server-interpreted rejection).
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
