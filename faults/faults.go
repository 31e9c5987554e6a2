// Package faults classifies request failures so handlers can decide what to
// show the caller: validation and domain messages go back verbatim,
// infrastructure detail stays in the logs.
package faults

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation covers missing or malformed request fields.
	Validation Kind = iota + 1
	// Domain covers rule violations: unknown user, duplicate booking, full slot.
	Domain
	// Infra covers storage and provider failures.
	Infra
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a Validation error with a client-facing message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

// Domainf builds a Domain error with a client-facing message.
func Domainf(format string, args ...any) *Error {
	return &Error{Kind: Domain, Msg: fmt.Sprintf(format, args...)}
}

// Infra wraps an underlying storage/provider error.
func Infraf(err error, format string, args ...any) *Error {
	return &Error{Kind: Infra, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the classification of err, defaulting to Infra for anything
// untyped so unknown failures are never echoed to clients.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Infra
}

// Message returns the client-facing text for err. Untyped errors collapse to
// the generic server-error message.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind != Infra {
		return fe.Msg
	}
	return "Server error."
}
