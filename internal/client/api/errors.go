package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a normalized remote-call failure.
type Kind string

const (
	// KindTransport: the request could not be sent or no response arrived.
	KindTransport Kind = "transport"
	// KindAuth: the service rejected the credential or the login itself.
	KindAuth Kind = "auth"
	// KindValidation: the service rejected malformed input.
	KindValidation Kind = "validation"
	// KindNotFound: the addressed resource does not exist.
	KindNotFound Kind = "not_found"
	// KindServer: a remote-side failure.
	KindServer Kind = "server"
	// KindNotImplemented: the capability is acknowledged but unsupported by
	// the current service version. Displayed the same as KindServer.
	KindNotImplemented Kind = "not_implemented"
)

// Error is the single error shape raised by the remote service client.
// Message carries the server-provided text when one was decodable,
// otherwise a generic transport message.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: "request failed, check your connection", cause: err}
}

func statusError(status int, serverMsg string) *Error {
	kind := kindForStatus(status)
	msg := serverMsg
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Kind: kind, Message: msg, Status: status}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusNotImplemented:
		return KindNotImplemented
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}
