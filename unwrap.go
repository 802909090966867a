// unwrap.go — identity helpers and graph traversal over wrapped errors.
//
// Traversal must handle both Unwrap() error and Unwrap() []error. A blanket
// map[error] "seen" set is unsafe: interface values whose dynamic type is not
// comparable panic as map keys. The guard is therefore split:
//   - seenErr (map[error]struct{}): comparable dynamic types only
//   - seenPtr (map[uintptr]struct{}): pointer identity for pointer types
// Non-comparable, non-pointer values are treated as acyclic (bounded by depth).
package xgxsuppress

import (
	"reflect"
)

type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

// isComparable reports whether err's dynamic type is safe as a map key.
func isComparable(err error) bool {
	return err != nil && reflect.TypeOf(err).Comparable()
}

// ptrID returns the address held by a pointer-typed dynamic error.
func ptrID(err error) (uintptr, bool) {
	if err == nil {
		return 0, false
	}
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Pointer(), true
	}
	return 0, false
}

// markSeen returns true if err was newly marked, false if already seen.
func markSeen(err error, seenErr map[error]struct{}, seenPtr map[uintptr]struct{}) bool {
	if err == nil {
		return false
	}
	if id, ok := ptrID(err); ok {
		if _, dup := seenPtr[id]; dup {
			return false
		}
		seenPtr[id] = struct{}{}
		return true
	}
	if isComparable(err) {
		if _, dup := seenErr[err]; dup {
			return false
		}
		seenErr[err] = struct{}{}
	}
	return true
}

// Walk visits each distinct node of err's unwrap graph in pre-order, left to
// right. Traversal stops when visit returns false. Cycles are safe; nil is a
// no-op.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	const maxDepth = 1 << 12

	stack := make([]error, 0, 8)
	seenErr := make(map[error]struct{}, 16)
	seenPtr := make(map[uintptr]struct{}, 16)

	stack = append(stack, err)
	markSeen(err, seenErr, seenPtr)

	for len(stack) > 0 && len(stack) < maxDepth {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(cur) {
			return
		}

		switch u := cur.(type) {
		case multiUnwrapper:
			kids := u.Unwrap()
			for i := len(kids) - 1; i >= 0; i-- {
				if c := kids[i]; c != nil && markSeen(c, seenErr, seenPtr) {
					stack = append(stack, c)
				}
			}
		case singleUnwrapper:
			if c := u.Unwrap(); c != nil && markSeen(c, seenErr, seenPtr) {
				stack = append(stack, c)
			}
		}
	}
}
