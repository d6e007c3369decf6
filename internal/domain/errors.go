package domain

import (
	"errors"
	"fmt"
)

// Business-rule violations surfaced to the caller as retryable-by-user
// conditions. Never used for storage failures.
var (
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrHoldExpired     = errors.New("hold expired")
	ErrPaymentRejected = errors.New("payment rejected")
	ErrDuplicateEmail  = errors.New("email already registered")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// PersistenceError wraps a storage/transaction failure that survived the one
// internal retry. The caller must retry the whole request.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("persistence failure in %s", e.Op)
	}
	return "persistence failure"
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}

// IsBusiness reports whether err is an ordinary domain outcome rather than a
// storage fault, so the engine knows not to retry it.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrHoldExpired) ||
		errors.Is(err, ErrPaymentRejected) ||
		errors.Is(err, ErrDuplicateEmail) ||
		IsValidation(err) || IsNotFound(err) || IsConflict(err)
}
