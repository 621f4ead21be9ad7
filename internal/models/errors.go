package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrIO ErrorType = iota
	ErrDBVersion
	ErrMissingField
	ErrMalformedDepend
	ErrMalformedField
	ErrNotFound
	ErrInvalidConfig
	ErrSignature
	ErrUnversionedCandidate
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrIO:
		return "IO"
	case ErrDBVersion:
		return "DBVersion"
	case ErrMissingField:
		return "MissingField"
	case ErrMalformedDepend:
		return "MalformedDepend"
	case ErrMalformedField:
		return "MalformedField"
	case ErrNotFound:
		return "NotFound"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrSignature:
		return "Signature"
	case ErrUnversionedCandidate:
		return "UnversionedCandidate"
	default:
		return "Unknown"
	}
}

// DBError represents an error while reading or querying a package database
type DBError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *DBError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DBError) Unwrap() error {
	return e.Err
}

// IsType reports whether err wraps a DBError of the given type
func IsType(err error, t ErrorType) bool {
	var dbErr *DBError
	return errors.As(err, &dbErr) && dbErr.Type == t
}

// VersionMismatchError is returned when the local database schema marker
// holds an unsupported value
type VersionMismatchError struct {
	Expected string
	Found    string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("database version mismatch: expected %q, got %q", e.Expected, e.Found)
}

// MissingFieldError is returned when a record lacks a mandatory section
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field %%%s%%", e.Field)
}

// MalformedDependError is returned for a specifier with an unknown operator
type MalformedDependError struct {
	Input string
}

func (e *MalformedDependError) Error() string {
	return fmt.Sprintf("unknown version operator in %q", e.Input)
}

// FieldError is returned when a numeric section holds a non-numeric value
type FieldError struct {
	Section string
	Value   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value %q in %%%s%%: %v", e.Value, e.Section, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
