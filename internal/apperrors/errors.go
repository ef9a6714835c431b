// Package apperrors defines the tagged error kinds shared by the order and
// operator services. Each error carries a kind, a message, the time it was
// raised and the HTTP status code it maps to at the system boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Kind string

const (
	// KindInvalidAttributes marks malformed or out-of-range input. Always
	// caller-fixable, never retried.
	KindInvalidAttributes Kind = "INVALID_ATTRIBUTES"
	// KindNotAllowed marks an operation that violates a business invariant.
	KindNotAllowed Kind = "NOT_ALLOWED"
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindSecurity marks a required identity that is missing or invalid.
	KindSecurity Kind = "SECURITY"
	// KindInternal marks unrecoverable store or infrastructure failures.
	KindInternal Kind = "INTERNAL"
)

type Error struct {
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
	Time       time.Time `json:"time"`
	StatusCode int       `json:"status_code"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, statusCode int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Time:       time.Now().UTC(),
		StatusCode: statusCode,
	}
}

func InvalidAttributes(format string, args ...interface{}) *Error {
	return newError(KindInvalidAttributes, http.StatusNotAcceptable, format, args...)
}

func NotAllowed(format string, args ...interface{}) *Error {
	return newError(KindNotAllowed, http.StatusConflict, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, http.StatusNotFound, format, args...)
}

func Security(format string, args ...interface{}) *Error {
	return newError(KindSecurity, http.StatusForbidden, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return newError(KindInternal, http.StatusInternalServerError, format, args...)
}

// KindOf reports the kind carried by err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCodeOf reports the HTTP status err maps to at the boundary.
func StatusCodeOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
