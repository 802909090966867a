// construct.go — concrete error types and constructors.
//
// Two categories:
//   - failureErr: contract violations and wrapped runtime failures.
//   - assertionErr: broken programming contracts (a resource with no Close
//     method). Always captures a stack; the code is fixed to assertion.
//
// Both carry a native suppression list and therefore satisfy Suppressor.
// Fluent builders copy the receiver, including a snapshot of that list.
package xgxsuppress

import (
	"fmt"
)

// -----------------------------------------------------------------------------
// failureErr
// -----------------------------------------------------------------------------

type failureErr struct {
	msg   string
	code  Code
	ctx   fields
	cause error
	stk   Stack
	sup   *SuppressionList
}

func (e *failureErr) Error() string {
	msg := e.msg
	if e.cause != nil {
		if msg == "" {
			msg = e.cause.Error()
		} else {
			msg += ": " + e.cause.Error()
		}
	}
	switch {
	case msg == "" && e.code != "":
		return string(e.code)
	case msg == "":
		return "error"
	case e.code != "":
		return fmt.Sprintf("%s: %s", e.code, msg)
	default:
		return msg
	}
}

func (e *failureErr) Unwrap() error           { return e.cause }
func (e *failureErr) CodeVal() Code           { return e.code }
func (e *failureErr) Context() map[string]any { return ctxToMap(e.ctx) }

func (e *failureErr) AddSuppressed(suppressed error) error {
	if e == nil {
		return addNative(nil, nil, suppressed)
	}
	return addNative(e, e.sup, suppressed)
}

func (e *failureErr) Suppressed() []error {
	if e == nil {
		return []error{}
	}
	return e.sup.Snapshot()
}

func (e *failureErr) With(key string, val any) Error {
	n := e.clone()
	n.ctx = ctxCloneAppend(n.ctx, Field{Key: key, Val: val})
	return n
}

func (e *failureErr) WithStack() Error {
	n := e.clone()
	n.stk = captureStackDefault(1)
	return n
}

func (e *failureErr) clone() *failureErr {
	n := *e
	n.ctx = ctxCloneAppend(e.ctx)
	n.sup = e.sup.clone()
	return &n
}

// -----------------------------------------------------------------------------
// assertionErr
// -----------------------------------------------------------------------------

type assertionErr struct {
	msg   string
	ctx   fields
	cause error
	stk   Stack
	sup   *SuppressionList
}

func (e *assertionErr) Error() string {
	if e.msg != "" {
		return "assertion failed: " + e.msg
	}
	if e.cause != nil {
		return "assertion failed: " + e.cause.Error()
	}
	return "assertion failed"
}

func (e *assertionErr) Unwrap() error           { return e.cause }
func (e *assertionErr) CodeVal() Code           { return CodeAssertion }
func (e *assertionErr) Context() map[string]any { return ctxToMap(e.ctx) }

func (e *assertionErr) AddSuppressed(suppressed error) error {
	if e == nil {
		return addNative(nil, nil, suppressed)
	}
	return addNative(e, e.sup, suppressed)
}

func (e *assertionErr) Suppressed() []error {
	if e == nil {
		return []error{}
	}
	return e.sup.Snapshot()
}

func (e *assertionErr) With(key string, val any) Error {
	n := e.clone()
	n.ctx = ctxCloneAppend(n.ctx, Field{Key: key, Val: val})
	return n
}

// WithStack keeps the stack captured at creation.
func (e *assertionErr) WithStack() Error { return e.clone() }

func (e *assertionErr) clone() *assertionErr {
	n := *e
	n.ctx = ctxCloneAppend(e.ctx)
	n.sup = e.sup.clone()
	return &n
}

// addNative is the shared AddSuppressed body for this package's own errors.
// A nil list stands for a nil receiver; checks run in the same order as the
// emulated path.
func addNative(receiver error, list *SuppressionList, suppressed error) error {
	if suppressed == nil {
		return NullArgument("suppressed")
	}
	if list == nil {
		return NullArgument("receiver")
	}
	if suppressed == receiver {
		return selfSuppression(suppressed)
	}
	list.Append(suppressed)
	return nil
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// New creates an internal failure with a message and optional key-values.
func New(msg string, kv ...any) Error {
	return &failureErr{msg: msg, code: CodeInternal, ctx: ctxFromKV(kv...), sup: newSuppressionList(0)}
}

// Internal wraps err as an internal failure and captures a stack at the call
// site. A nil err still yields a debuggable error.
func Internal(err error) Error {
	fe := &failureErr{
		msg:   "internal error",
		code:  CodeInternal,
		ctx:   emptyFields,
		cause: err,
		sup:   newSuppressionList(0),
	}
	fe.stk = captureStackDefault(1)
	return fe
}

// InvalidArgument reports that arg violated a precondition.
func InvalidArgument(arg, reason string) Error {
	return &failureErr{
		msg:  fmt.Sprintf("invalid %s: %s", arg, reason),
		code: CodeInvalidArgument,
		ctx:  ctxFromKV("argument", arg, "reason", reason),
		sup:  newSuppressionList(0),
	}
}

// NullArgument reports that a required argument was nil.
func NullArgument(arg string) Error {
	return &failureErr{
		msg:  arg + " cannot be nil",
		code: CodeNullArgument,
		ctx:  ctxFromKV("argument", arg),
		sup:  newSuppressionList(0),
	}
}

// Assertion creates an assertion failure with a stack captured at the call
// site. These signal programming errors and are raised with panic.
func Assertion(msg string, cause error) Error {
	return &assertionErr{
		msg:   msg,
		ctx:   emptyFields,
		cause: cause,
		stk:   captureStackDefault(1),
		sup:   newSuppressionList(0),
	}
}

func selfSuppression(suppressed error) Error {
	fe := InvalidArgument("suppressed", "self-suppression is not allowed").(*failureErr)
	fe.cause = suppressed
	return fe
}

var (
	_ Error = (*failureErr)(nil)
	_ Error = (*assertionErr)(nil)
)
