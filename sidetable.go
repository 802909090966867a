package xgxsuppress

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// SuppressionList is an append-only, mutex-guarded list of suppressed errors.
// Insertion order is suppression order.
type SuppressionList struct {
	mu   sync.Mutex
	errs []error
}

func newSuppressionList(capacity int) *SuppressionList {
	return &SuppressionList{errs: make([]error, 0, capacity)}
}

// Append records err at the end of the list.
func (l *SuppressionList) Append(err error) {
	l.mu.Lock()
	l.errs = append(l.errs, err)
	l.mu.Unlock()
}

// Len returns the number of recorded errors.
func (l *SuppressionList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errs)
}

// Snapshot returns a copy of the list. It is never nil.
func (l *SuppressionList) Snapshot() []error {
	if l == nil {
		return []error{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]error, len(l.errs))
	copy(out, l.errs)
	return out
}

// Each calls fn for every entry in order while holding the list lock, so
// concurrent appends wait until the iteration completes. fn must not call
// back into the same list.
func (l *SuppressionList) Each(fn func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, err := range l.errs {
		fn(err)
	}
}

func (l *SuppressionList) clone() *SuppressionList {
	snap := l.Snapshot()
	return &SuppressionList{errs: snap}
}

// staleQueue collects keys reported by runtime cleanups. Cleanups run on the
// runtime's cleanup goroutine, so push must never block for long.
type staleQueue struct {
	mu   sync.Mutex
	keys []IdentityKey
}

func (q *staleQueue) push(k IdentityKey) {
	q.mu.Lock()
	q.keys = append(q.keys, k)
	q.mu.Unlock()
}

func (q *staleQueue) drain() []IdentityKey {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.keys) == 0 {
		return nil
	}
	out := q.keys
	q.keys = nil
	return out
}

// SideTable maps error identities to their suppression lists without
// touching the errors themselves. Keys are weak: once an error becomes
// unreachable its entry is reported to the stale queue and removed by the
// next EvictStale, which every public method runs first.
type SideTable struct {
	entries sync.Map // IdentityKey → *SuppressionList
	count   atomic.Int64
	stale   staleQueue
	logger  *zap.Logger
}

// NewSideTable returns an empty side table that logs through the package
// logger.
func NewSideTable() *SideTable {
	return newSideTable(nil)
}

func newSideTable(logger *zap.Logger) *SideTable {
	if logger == nil {
		logger = Logger()
	}
	return &SideTable{logger: logger}
}

// GetOrCreate returns the list for err, creating an empty one if absent.
// Concurrent calls for the same identity observe a single list.
func (t *SideTable) GetOrCreate(err error) (*SuppressionList, error) {
	t.EvictStale()

	if l, ok := t.lookup(err); ok {
		return l, nil
	}

	key, cleanup, kerr := newIdentityKey(err, &t.stale)
	if kerr != nil {
		return nil, kerr
	}
	fresh := newSuppressionList(2)
	actual, loaded := t.entries.LoadOrStore(key, fresh)
	if loaded {
		// Another goroutine registered this identity first; our cleanup would
		// only report a key that is already tracked.
		cleanup.Stop()
		return actual.(*SuppressionList), nil
	}
	t.count.Add(1)
	return fresh, nil
}

// GetIfPresent returns the list for err without creating one.
func (t *SideTable) GetIfPresent(err error) (*SuppressionList, bool) {
	t.EvictStale()
	return t.lookup(err)
}

// Size returns the number of tracked identities. Eviction is lazy, so the
// count may include entries whose errors were just collected.
func (t *SideTable) Size() int {
	t.EvictStale()
	return int(t.count.Load())
}

// EvictStale removes every entry whose key was reported collected and
// returns how many entries were removed.
func (t *SideTable) EvictStale() int {
	keys := t.stale.drain()
	removed := 0
	for _, k := range keys {
		if _, ok := t.entries.LoadAndDelete(k); ok {
			t.count.Add(-1)
			removed++
		}
	}
	if removed > 0 {
		t.logger.Debug("evicted stale suppression lists",
			zap.Int("removed", removed),
			zap.Int64("remaining", t.count.Load()))
	}
	return removed
}

func (t *SideTable) lookup(err error) (*SuppressionList, bool) {
	key, _, kerr := newIdentityKey(err, nil)
	if kerr != nil {
		return nil, false
	}
	v, ok := t.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*SuppressionList), true
}
