// Package errs defines the domain error taxonomy shared by services and
// controllers: validation, permission, conflict, not-found, transient,
// terminal, and reconciliation failures each map to a distinct HTTP
// status and retry behavior.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: bad input rejected before any network call. No retry.
	ErrValidation = errors.New("validation error")
	// ErrPermission: actor not authorized. No mutation happened. No retry.
	ErrPermission = errors.New("permission denied")
	// ErrConflict: state changed concurrently; caller should reload, not blindly retry.
	ErrConflict = errors.New("conflict")
	// ErrNotFound: the addressed row/blob does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransient: retriable backend failure (not-ready, 502/503/504).
	ErrTransient = errors.New("transient backend error")
	// ErrReconcile: a partial write left stores inconsistent and the
	// compensation could not restore them; must be surfaced, never retried silently.
	ErrReconcile = errors.New("reconciliation required")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrValidation, args)...)
}

func Permissionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrPermission, args)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrConflict, args)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

func Transientf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrTransient, args)...)
}

func Reconcilef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrReconcile, args)...)
}

func prepend(err error, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, err)
	return append(out, args...)
}

func IsTransient(err error) bool { return errors.Is(err, ErrTransient) }
func IsConflict(err error) bool  { return errors.Is(err, ErrConflict) }
