// Package errs defines the error kinds the API maps onto HTTP statuses.
package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindInvalid
)

// Error is a domain error carrying a kind and a short, client-safe detail.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Is matches any *Error of the same kind, so errors.Is(err, errs.ErrNotFound) works on wrapped values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Detail == ""
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrInvalid      = &Error{Kind: KindInvalid}
)

func NotFound(detail string) error     { return &Error{Kind: KindNotFound, Detail: detail} }
func Unauthorized(detail string) error { return &Error{Kind: KindUnauthorized, Detail: detail} }
func Forbidden(detail string) error    { return &Error{Kind: KindForbidden, Detail: detail} }
func Conflict(detail string) error     { return &Error{Kind: KindConflict, Detail: detail} }
func Invalid(detail string) error      { return &Error{Kind: KindInvalid, Detail: detail} }

// Status returns the HTTP status and detail for err. Unknown errors map to 500 with a generic detail.
func Status(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound, e.Detail
	case KindUnauthorized:
		return http.StatusUnauthorized, e.Detail
	case KindForbidden:
		return http.StatusForbidden, e.Detail
	case KindConflict:
		return http.StatusConflict, e.Detail
	case KindInvalid:
		return http.StatusUnprocessableEntity, e.Detail
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
