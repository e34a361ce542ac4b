package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input, caught before any
// store call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" && e.Msg != "" {
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

// NotFoundError reports a missing primary record. Broken relations never
// produce this; they resolve to nil for display.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConstraintError reports a delete blocked by dependent records.
type ConstraintError struct {
	Resource string
	Msg      string
}

func (e ConstraintError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s has dependent records", e.Resource)
}

// BackendError wraps a store or network failure at the operation boundary.
type BackendError struct {
	Op  string
	Err error
}

func (e BackendError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e BackendError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v NotFoundError
	return errors.As(err, &v)
}

func IsConstraint(err error) bool {
	var v ConstraintError
	return errors.As(err, &v)
}

func IsBackend(err error) bool {
	var v BackendError
	return errors.As(err, &v)
}
