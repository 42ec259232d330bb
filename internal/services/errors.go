package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures. The HTTP layer collapses every kind
// into the same wire response but logs the kind.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindConflict   ErrorKind = "conflict"
	KindExpired    ErrorKind = "expired"
	KindInternal   ErrorKind = "internal"
)

var (
	ErrValidation = &ServiceError{Kind: KindValidation}
	ErrNotFound   = &ServiceError{Kind: KindNotFound}
	ErrForbidden  = &ServiceError{Kind: KindForbidden}
	ErrConflict   = &ServiceError{Kind: KindConflict}
	ErrExpired    = &ServiceError{Kind: KindExpired}
	ErrInternal   = &ServiceError{Kind: KindInternal}
)

type ServiceError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ServiceError) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is matches on kind so errors.Is(err, ErrNotFound) works for any not-found error.
func (e *ServiceError) Is(target error) bool {
	var t *ServiceError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, op string, format string, args ...any) error {
	return &ServiceError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func invalid(op, format string, args ...any) error {
	return newError(KindValidation, op, format, args...)
}

func notFound(op, format string, args ...any) error {
	return newError(KindNotFound, op, format, args...)
}

func forbidden(op, format string, args ...any) error {
	return newError(KindForbidden, op, format, args...)
}

func conflict(op, format string, args ...any) error {
	return newError(KindConflict, op, format, args...)
}

func dbError(op string, err error) error {
	return &ServiceError{Kind: KindInternal, Op: op, Err: err}
}

// KindOf returns the kind of a service error, or KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
