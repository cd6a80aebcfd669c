package fortress

import "fmt"

// The error taxonomy is deliberately small. Nothing in the engine is fatal:
// a ValidationError rejects the mutation, a NotFoundError is a no-op for the
// caller, a StorageError leaves the in-memory model ahead of disk, and a
// ParseError degrades to the empty default document.

// ValidationError reports bad user input. The caller should surface it to
// the user; there is nothing to retry.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to an absent entity.
type NotFoundError struct {
	Entity string // "fund" or "milestone"
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Name)
}

// StorageError reports a persistence failure. When returned by a mutator the
// in-memory mutation has been applied and retained; only the write to the
// durable store failed. Callers should surface it as an "unsaved changes"
// warning, never discard user data.
type StorageError struct {
	Op  string // "save", "load" or "clear"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ParseError reports a corrupt persisted document. It is handled at the load
// boundary (the document degrades to its empty default) and never propagates
// as a crash.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corrupt ledger document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
