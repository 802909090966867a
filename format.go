// format.go — fmt.Formatter implementations.
//
//   %s, %v   → concise string (Error()).
//   %q       → quoted Error().
//   %+v      → verbose, multi-line:
//                code=<code> msg="<message>"
//                ctx: key1=val1 key2=val2
//                cause: <cause formatted with %+v>
//                stack:
//                  pkg.Func /path/file.go:123
//                Suppressed: <suppressed formatted with %+v>
//
// An error already rendered earlier in the same trace prints as
// "[CIRCULAR REFERENCE: <Error()>]".
package xgxsuppress

import (
	"fmt"
	"io"
)

func formatConcise(w io.Writer, e error) {
	_, _ = io.WriteString(w, e.Error())
}

// verbosePrinter writes the multi-line form of one trace. Empty sections are
// omitted except the message, which is always quoted.
//
// seen holds every error of this package already rendered in the trace.
// Meeting one again prints a circular reference marker instead of recursing,
// so an error that suppresses its own wrapper still terminates.
type verbosePrinter struct {
	w    io.Writer
	seen map[error]struct{}
}

func newVerbosePrinter(w io.Writer) *verbosePrinter {
	return &verbosePrinter{w: w, seen: make(map[error]struct{})}
}

func (p *verbosePrinter) print(err error) {
	switch e := err.(type) {
	case *failureErr:
		if e == nil {
			_, _ = io.WriteString(p.w, "<nil>")
		} else if p.enter(e) {
			p.body(e.code, e.msg, e.ctx, e.cause, e.stk, e.sup)
		}
	case *assertionErr:
		if e == nil {
			_, _ = io.WriteString(p.w, "<nil>")
		} else if p.enter(e) {
			p.body(CodeAssertion, e.plainMsgOrCause(), e.ctx, e.cause, e.stk, e.sup)
		}
	default:
		_, _ = fmt.Fprintf(p.w, "%+v", err)
	}
}

// enter marks err as rendered and reports whether it was new.
func (p *verbosePrinter) enter(err error) bool {
	if _, dup := p.seen[err]; dup {
		_, _ = fmt.Fprintf(p.w, "[CIRCULAR REFERENCE: %s]", err.Error())
		return false
	}
	p.seen[err] = struct{}{}
	return true
}

func (p *verbosePrinter) body(code Code, msg string, ctx fields, cause error, stk Stack, sup *SuppressionList) {
	w := p.w
	if code != "" {
		_, _ = fmt.Fprintf(w, "code=%s ", code)
	}
	_, _ = fmt.Fprintf(w, "msg=%q", msg)

	if len(ctx) > 0 {
		_, _ = io.WriteString(w, "\nctx:")
		for _, f := range ctx {
			if f.Key != "" {
				_, _ = fmt.Fprintf(w, " %s=%v", f.Key, f.Val)
			}
		}
	}

	if cause != nil {
		_, _ = io.WriteString(w, "\ncause: ")
		p.print(cause)
	}

	if len(stk) > 0 {
		_, _ = io.WriteString(w, "\nstack:")
		for _, fr := range stk {
			_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
		}
	}

	// Format from a copy: a suppressed error may lead back to this list.
	for _, s := range sup.Snapshot() {
		_, _ = io.WriteString(w, "\n"+SuppressedPrefix)
		p.print(s)
	}
}

func formatWith(s fmt.State, verb rune, e error, verbose func()) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			verbose()
			return
		}
		formatConcise(s, e)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		formatConcise(s, e)
	}
}

func (e *failureErr) Format(s fmt.State, verb rune) {
	formatWith(s, verb, e, func() {
		newVerbosePrinter(s).print(e)
	})
}

func (e *assertionErr) Format(s fmt.State, verb rune) {
	formatWith(s, verb, e, func() {
		newVerbosePrinter(s).print(e)
	})
}

// plainMsgOrCause returns the message without the "assertion failed: "
// prefix; verbose output already prints code=assertion.
func (e *assertionErr) plainMsgOrCause() string {
	if e.msg != "" {
		return e.msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return ""
}
