// codes.go — error codes produced by the suppression layer.
//
// Conventions:
//   - Codes are lowercase snake_case ASCII.
//   - The empty string means "unspecified" and is never a built-in.
package xgxsuppress

// Contract violations
const (
	CodeInvalidArgument Code = "invalid_argument"
	CodeNullArgument    Code = "null_argument"
	CodeAssertion       Code = "assertion"
)

// Runtime conditions
const (
	CodeDetectionFailed Code = "detection_failed"
	CodeInternal        Code = "internal"
)

var allBuiltinCodes = []Code{
	CodeInvalidArgument,
	CodeNullArgument,
	CodeAssertion,
	CodeDetectionFailed,
	CodeInternal,
}

var builtinCodeSet = map[Code]struct{}{
	CodeInvalidArgument: {},
	CodeNullArgument:    {},
	CodeAssertion:       {},
	CodeDetectionFailed: {},
	CodeInternal:        {},
}

// BuiltinCodes returns a copy of the built-in codes in a stable order.
func BuiltinCodes() []Code {
	out := make([]Code, len(allBuiltinCodes))
	copy(out, allBuiltinCodes)
	return out
}

// IsBuiltin reports whether c is one of the codes shipped with this package.
func (c Code) IsBuiltin() bool {
	_, ok := builtinCodeSet[c]
	return ok
}
