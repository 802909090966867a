// predicates.go — stdlib-aligned classification helpers.
//
// All helpers use errors.As so they see through Unwrap() error and
// Unwrap() []error chains.
package xgxsuppress

import (
	"errors"
)

// IsInvalidArgument reports whether err is (or wraps) an invalid_argument error.
func IsInvalidArgument(err error) bool { return HasCode(err, CodeInvalidArgument) }

// IsNullArgument reports whether err is (or wraps) a null_argument error.
func IsNullArgument(err error) bool { return HasCode(err, CodeNullArgument) }

// IsAssertion reports whether err is (or wraps) an assertion failure.
func IsAssertion(err error) bool {
	if err == nil {
		return false
	}
	var a *assertionErr
	if errors.As(err, &a) {
		return true
	}
	return HasCode(err, CodeAssertion)
}

// HasCode reports whether the first coded error along err's chain carries code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// CodeOf returns the first Code found along err's chain, or "" if none.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var cv interface{ CodeVal() Code }
	if errors.As(err, &cv) {
		return cv.CodeVal()
	}
	return ""
}
