// context.go — immutable key/value fields attached to errors.
//
// Design:
//   • Internal representation is an append-only []Field (deterministic order).
//   • Builders never write into a published slice; they allocate a fresh one.
//   • Callers see a copy-on-read map[string]any (last write wins).
package xgxsuppress

// Field is a single contextual key-value pair attached to an error.
type Field struct {
	Key string
	Val any
}

type fields []Field

var emptyFields = make(fields, 0)

// ctxCloneAppend returns a NEW slice holding dst followed by add.
func ctxCloneAppend(dst fields, add ...Field) fields {
	if len(dst)+len(add) == 0 {
		return emptyFields
	}
	out := make(fields, len(dst)+len(add))
	copy(out, dst)
	copy(out[len(dst):], add)
	return out
}

// ctxFromKV reads (key, value) pairs left to right. A pair whose key is not a
// string is dropped whole so later pairs stay aligned; a trailing key gets a
// nil value.
func ctxFromKV(kv ...any) fields {
	if len(kv) == 0 {
		return emptyFields
	}
	out := make(fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return emptyFields
	}
	return out
}

// ctxToMap builds a NEW map from fs, or nil when fs is empty.
func ctxToMap(fs fields) map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}
