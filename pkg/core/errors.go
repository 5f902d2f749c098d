package core

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by adapters used before Connect.
var ErrNotConnected = errors.New("database connection not established")

// UsageError is a fatal configuration or invocation error raised before
// the pipeline starts.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IOError means an input could not be opened or read. The file is skipped.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// HeaderError means no header row could be established for an input.
type HeaderError struct {
	Path string
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("failed to read header of %s: %v", e.Path, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// RowDecodeError describes a row that could not be decoded. The row is
// skipped and scanning continues.
type RowDecodeError struct {
	File string
	Row  int
	Err  error
}

// Error renders the row error in report form.
func (e *RowDecodeError) Error() string {
	return fmt.Sprintf("%s -> parse error -> %v", e.File, e.Err)
}

func (e *RowDecodeError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for invalid arguments to a storage operation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// SchemaError means DDL for a table failed. Only that file's store phase
// is aborted.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table creation error for %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ReconciliationError reports that fewer rows were stored than parsed.
type ReconciliationError struct {
	Name   string
	Parsed int
	Stored int
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: stored %d of %d parsed rows", e.Name, e.Stored, e.Parsed)
}
