// identity.go — weak identity keys for error values.
//
// An error's identity is the pointer held in its interface value. Keys hold
// that pointer weakly, so a tracked error is collected exactly as if it had
// never been registered.
//
// Three kinds of dynamic value:
//   - heap pointers: keyed by address + weak.Pointer. The weak handle is unique
//     to the object, so a key built for a dead error never equals a key built
//     for a new error that reuses the address.
//   - non-heap pointers (linker-allocated package variables, zero-size values)
//     and comparable non-pointer values (syscall.Errno and friends): these
//     have no lifetime to observe and are keyed by value.
//   - non-comparable non-pointer values: no identity; rejected.
package xgxsuppress

import (
	"reflect"
	"runtime"
	"unsafe"
	"weak"
)

// IdentityKey identifies an error by identity. Keys are comparable, so map
// equality and Equal agree for live referents.
type IdentityKey struct {
	hash  uintptr
	ref   weak.Pointer[byte]
	value any // set only for errors without an observable lifetime
}

// NewIdentityKey returns a lookup key for err. It never registers a cleanup
// notification.
func NewIdentityKey(err error) (IdentityKey, error) {
	k, _, ierr := newIdentityKey(err, nil)
	return k, ierr
}

// Hash returns the address captured at construction (0 for value-keyed errors).
func (k IdentityKey) Hash() uintptr { return k.hash }

// Cleared reports whether the referent has become unreachable. Value-keyed
// errors are never cleared.
func (k IdentityKey) Cleared() bool {
	if k.value != nil {
		return false
	}
	return k.ref.Value() == nil
}

// Equal reports whether both keys resolve to the same live referent.
func (k IdentityKey) Equal(other IdentityKey) bool {
	if k.hash != other.hash || k.Cleared() || other.Cleared() {
		return false
	}
	if k.value != nil || other.value != nil {
		return k.value == other.value
	}
	return k.ref == other.ref
}

// cleanupQueue receives keys whose referents have been collected. It is fed
// by runtime cleanups and drained by SideTable.EvictStale.
type cleanupQueue interface {
	push(IdentityKey)
}

// keySlot is the cleanup argument. It must not reference the error itself,
// otherwise the cleanup would never run.
type keySlot struct {
	key IdentityKey
}

// newIdentityKey builds a key for err. When q is non-nil and err is a heap
// object, a cleanup is registered that pushes the key onto q once err is
// collected; the returned Cleanup lets callers cancel it when their key loses
// a registration race.
func newIdentityKey(err error, q cleanupQueue) (IdentityKey, runtime.Cleanup, error) {
	var none runtime.Cleanup
	if err == nil {
		return IdentityKey{}, none, NullArgument("error")
	}

	p, isPtr := pointerOf(err)
	if !isPtr {
		if !isComparable(err) {
			return IdentityKey{}, none, InvalidArgument("error", "value of type "+reflect.TypeOf(err).String()+" has no identity")
		}
		return IdentityKey{value: err}, none, nil
	}

	slot := &keySlot{}
	var c runtime.Cleanup
	if q != nil {
		c = runtime.AddCleanup((*byte)(p), func(s *keySlot) { q.push(s.key) }, slot)
	} else {
		c = runtime.AddCleanup((*byte)(p), func(struct{}) {}, struct{}{})
	}
	if c == none {
		// Not heap-allocated: the object lives for the whole process.
		return IdentityKey{hash: uintptr(p), value: err}, none, nil
	}
	if q == nil {
		c.Stop()
		c = none
	}

	slot.key = IdentityKey{hash: uintptr(p), ref: weak.Make((*byte)(p))}
	return slot.key, c, nil
}

// pointerOf returns the pointer held by err's dynamic value when it is a
// non-nil pointer to a non-zero-size type.
func pointerOf(err error) (unsafe.Pointer, bool) {
	rv := reflect.ValueOf(err)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	if rv.Type().Elem().Size() == 0 {
		// All zero-size allocations share one address.
		return nil, false
	}
	return rv.UnsafePointer(), true
}

// sameIdentity reports whether a and b are the same error by identity.
// Unlike ==, it never panics on non-comparable dynamic types.
func sameIdentity(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if pa, ok := ptrID(a); ok {
		pb, _ := ptrID(b)
		return pa == pb
	}
	if isComparable(a) {
		return a == b
	}
	return false
}
