// Package xgxsuppress records secondary ("suppressed") errors against a
// primary error and closes resources without losing either failure.
//
// Design tenets:
//   - Interop-first: every error value works as a receiver, not only ours.
//   - One contract: AddSuppressed/GetSuppressed/PrintStackTrace/CloseResource
//     behave the same regardless of which strategy is active.
//   - No lifetime influence: tracking never keeps a foreign error alive.
//
// See: errors.Is / errors.As contracts in the Go standard library.
package xgxsuppress

// Code classifies errors produced by this package into machine-readable
// categories. Codes are stringly-typed for stability across log pipelines.
type Code string

// Suppressor is implemented by errors that carry their own suppression list.
// This is the "native" mechanism; the Native strategy delegates to it.
//
// AddSuppressed MUST reject nil and self-suppression with the same error
// codes the emulated path uses (null_argument, invalid_argument).
// Suppressed MUST return a fresh slice in insertion order, never nil.
type Suppressor interface {
	AddSuppressed(suppressed error) error
	Suppressed() []error
}

// Error is the error contract shared by every error this package creates.
//
// Fluent methods are non-mutating: they return a new Error. The suppression
// list is the one mutable part, because suppression is recorded against an
// identity that is already in flight. Clones start with a snapshot of the
// receiver's suppressed errors.
type Error interface {
	error
	Suppressor

	// With adds a single key-value field. Returns a NEW Error.
	With(key string, val any) Error

	// WithStack attaches a stack trace to this error. Returns a NEW Error.
	WithStack() Error

	// CodeVal returns the classification code, or "" when unspecified.
	CodeVal() Code

	// Context returns a shallow COPY of the error's fields as a map.
	Context() map[string]any

	// Unwrap returns the causal parent error (if any).
	Unwrap() error
}
