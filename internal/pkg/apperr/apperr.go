// Package apperr defines the typed error taxonomy shared by the auth
// service, the record gateway and the HTTP layer. Every failure that
// crosses a package boundary is wrapped in an *Error so the serializer
// can map it to a transport status without string matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// auth
	KindInvalidCredentials Kind = iota + 1
	KindMalformedResponse
	KindUnauthenticated
	KindUnauthorized

	// data
	KindNotFound
	KindStoreUnavailable
	KindStoreRejected
	KindValidationFailed
	KindConflict

	// transport
	KindNetworkFailure
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindStoreRejected:
		return "store_rejected"
	case KindValidationFailed:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindNetworkFailure:
		return "network_failure"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a taxonomy error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a taxonomy error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the taxonomy kind from err, or 0 when err carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the human-readable message of the taxonomy error, or a
// generic fallback for untyped errors.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "internal error"
}

// HTTPStatus maps a taxonomy kind to the transport status the API
// boundary must answer with. Untyped errors map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindConflict:
		// contended writes are retryable by the client, not a server
		// fault
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
