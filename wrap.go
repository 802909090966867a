// wrap.go — adapters that apply this package's builders to ANY error.
//
// Adapters never mutate their argument. Wrapping a foreign error creates a
// new identity; suppression recorded against the original stays with the
// original.
package xgxsuppress

// From converts any error into an Error without adding policy.
//   - nil → nil
//   - Error → returned as-is (identity preserved)
//   - other error → wrapped as an internal failure
func From(err error) Error {
	if err == nil {
		return nil
	}
	if xe, ok := err.(Error); ok {
		return xe
	}
	return &failureErr{msg: "internal error", code: CodeInternal, ctx: emptyFields, cause: err, sup: newSuppressionList(0)}
}

// Wrap returns a new failure carrying msg and kv with err as its cause.
// Unlike From, it always creates a new identity.
func Wrap(err error, msg string, kv ...any) Error {
	code := CodeOf(err)
	if code == "" {
		code = CodeInternal
	}
	return &failureErr{
		msg:   msg,
		code:  code,
		ctx:   ctxFromKV(kv...),
		cause: err,
		sup:   newSuppressionList(0),
	}
}

// With attaches a single key/value to any error immutably.
func With(err error, key string, val any) Error {
	if err == nil {
		return &failureErr{msg: "error", code: CodeInternal, ctx: ctxFromKV(key, val), sup: newSuppressionList(0)}
	}
	return From(err).With(key, val)
}

// Recode returns a copy of err carrying code c. Assertion failures keep their
// code. Foreign errors are wrapped.
func Recode(err error, c Code) Error {
	switch e := err.(type) {
	case nil:
		return &failureErr{msg: "error", code: c, ctx: emptyFields, sup: newSuppressionList(0)}
	case *failureErr:
		n := e.clone()
		n.code = c
		return n
	case *assertionErr:
		return e.clone()
	default:
		return &failureErr{code: c, ctx: emptyFields, cause: err, sup: newSuppressionList(0)}
	}
}

// WithStack attaches a stack trace captured at the caller to any error.
func WithStack(err error) Error {
	if xe, ok := err.(*failureErr); ok {
		n := xe.clone()
		n.stk = captureStackDefault(1)
		return n
	}
	if xe, ok := err.(Error); ok {
		return xe.WithStack()
	}
	fe := &failureErr{msg: "internal error", code: CodeInternal, ctx: emptyFields, cause: err, sup: newSuppressionList(0)}
	fe.stk = captureStackDefault(1)
	return fe
}
