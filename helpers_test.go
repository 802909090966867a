package xgxsuppress

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

// newTestRuntime builds a runtime with a fixed selection, bypassing probes.
func newTestRuntime(t *testing.T, s Strategy, level int) *Runtime {
	t.Helper()
	return newRuntime(Selection{Strategy: s, Level: level, Detected: true}, zaptest.NewLogger(t))
}

// containsInOrder reports whether all needles appear in haystack in order.
func containsInOrder(haystack string, needles ...string) bool {
	pos := 0
	for _, n := range needles {
		i := strings.Index(haystack[pos:], n)
		if i < 0 {
			return false
		}
		pos += i + len(n)
	}
	return true
}

// recoverPanic runs fn and returns the recovered panic value, or nil.
func recoverPanic(fn func()) (rec any) {
	defer func() { rec = recover() }()
	fn()
	return nil
}

// closeLog records the order in which test resources are closed.
type closeLog struct {
	mu    sync.Mutex
	order []string
}

func (l *closeLog) add(name string) {
	l.mu.Lock()
	l.order = append(l.order, name)
	l.mu.Unlock()
}

// stdCloser implements io.Closer.
type stdCloser struct {
	name   string
	err    error
	log    *closeLog
	closed bool
}

func (c *stdCloser) Close() error {
	c.closed = true
	if c.log != nil {
		c.log.add(c.name)
	}
	return c.err
}

// quietCloser implements interface{ Close() } and fails by panicking.
type quietCloser struct {
	panicWith any
	closed    bool
}

func (c *quietCloser) Close() {
	c.closed = true
	if c.panicWith != nil {
		panic(c.panicWith)
	}
}

// codedCloseErr is a concrete error type returned by reflectCloser.
type codedCloseErr struct{ code int }

func (e *codedCloseErr) Error() string { return "close failed with code " + strconv.Itoa(e.code) }

// reflectCloser has a Close method that neither io.Closer nor
// interface{ Close() } matches.
type reflectCloser struct {
	fail   bool
	closed bool
}

func (c *reflectCloser) Close() *codedCloseErr {
	c.closed = true
	if c.fail {
		return &codedCloseErr{code: 7}
	}
	return nil
}

// multiResultCloser returns an extra value before the error.
type multiResultCloser struct{ err error }

func (c multiResultCloser) Close() (int, error) { return 3, c.err }

// statusCloseErr is an error type returned by value; its zero value is
// still a real failure.
type statusCloseErr struct{ status int }

func (e statusCloseErr) Error() string { return "close returned status " + strconv.Itoa(e.status) }

// statusCloser returns a zero statusCloseErr from Close.
type statusCloser struct{}

func (statusCloser) Close() statusCloseErr { return statusCloseErr{} }

// noCloser has no Close method at all.
type noCloser struct{ _ int }

// argCloser has a Close method that takes an argument.
type argCloser struct{}

func (argCloser) Close(force bool) error { return nil }

// sliceErr is an error type with no identity: it is neither a pointer nor
// comparable.
type sliceErr []string

func (e sliceErr) Error() string { return strings.Join(e, ",") }

// ownSuppressor is a foreign error type with native suppression support.
type ownSuppressor struct {
	msg  string
	sups []error
}

func (e *ownSuppressor) Error() string { return e.msg }

func (e *ownSuppressor) AddSuppressed(s error) error {
	if s == nil {
		return NullArgument("suppressed")
	}
	e.sups = append(e.sups, s)
	return nil
}

func (e *ownSuppressor) Suppressed() []error {
	out := make([]error, len(e.sups))
	copy(out, e.sups)
	return out
}

var errSentinel = errors.New("sentinel")
