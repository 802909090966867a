// closer.go — closing resources without losing the in-flight error.
//
// Close capabilities, in order of preference:
//   (a) io.Closer, when the capability level is at least NativeCloseLevel;
//   (b) interface{ Close() }, whose only failure mode is a panic;
//   (c) reflection: an exported, zero-argument Close method with any results.
//       The last result is the failure when its type implements error. This
//       covers Close methods returning a concrete error type or extra values.
//
// A resource with none of these is a programming error and panics with an
// assertion failure naming its type. Close failures are never retried.
package xgxsuppress

import (
	"fmt"
	"io"
	"reflect"
)

type voidCloser interface{ Close() }

var errorType = reflect.TypeFor[error]()

// CloseResource closes resource on behalf of primary, the error in flight (or
// nil when there is none).
//
//   - nil resource: returns nil.
//   - close succeeds: returns nil; the caller still owns primary.
//   - close fails with e and primary != nil: e is recorded as suppressed by
//     primary through the runtime's strategy and primary is returned. If the
//     recording itself fails (e is primary), that failure is returned.
//   - close fails with e and primary == nil: e is returned.
//
// A panic raised inside Close whose value is an error is treated as that
// error. Other panics propagate unchanged.
func (r *Runtime) CloseResource(primary error, resource any) error {
	if resource == nil {
		return nil
	}
	closeErr := r.closeOnce(resource)
	if closeErr == nil {
		return nil
	}
	if primary == nil {
		return closeErr
	}
	if err := r.AddSuppressed(primary, closeErr); err != nil {
		return err
	}
	return primary
}

// CloseInto closes resource and folds the outcome into *errp, suitable for
// defer:
//
//	defer rt.CloseInto(&err, f)
func (r *Runtime) CloseInto(errp *error, resource any) {
	if errp == nil {
		panic(Assertion("CloseInto called with a nil error pointer", nil))
	}
	if err := r.CloseResource(*errp, resource); err != nil {
		*errp = err
	}
}

// CloseAll closes resources in reverse order, as nested resource blocks
// would. The first close failure becomes the primary error when none was in
// flight; every later failure is recorded as suppressed by it.
func (r *Runtime) CloseAll(primary error, resources ...any) error {
	for i := len(resources) - 1; i >= 0; i-- {
		if err := r.CloseResource(primary, resources[i]); err != nil {
			primary = err
		}
	}
	return primary
}

// closeOnce runs the preferred close capability and returns its failure.
func (r *Runtime) closeOnce(resource any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			perr, ok := rec.(error)
			if !ok || IsAssertion(perr) {
				panic(rec)
			}
			err = perr
		}
	}()

	if r.sel.Level >= NativeCloseLevel {
		if c, ok := resource.(io.Closer); ok {
			return c.Close()
		}
	}
	if c, ok := resource.(voidCloser); ok {
		c.Close()
		return nil
	}
	return closeReflect(resource)
}

// closeReflect is the last-resort lookup. Panics raised by the method itself
// pass through reflect.Value.Call unchanged and are handled by closeOnce.
func closeReflect(resource any) error {
	rv := reflect.ValueOf(resource)
	m := rv.MethodByName("Close")
	if !m.IsValid() || m.Type().NumIn() != 0 {
		panic(noCloseMethod(rv.Type()))
	}

	out := m.Call(nil)
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if !last.Type().Implements(errorType) || isNilValue(last) {
		return nil
	}
	return last.Interface().(error)
}

// isNilValue reports whether v holds nil. Value kinds such as structs are
// never nil, so a zero struct error is still a failure.
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func noCloseMethod(t reflect.Type) Error {
	return Assertion(fmt.Sprintf("%s does not have a Close() method", t), nil).
		With("resource_type", t.String())
}
