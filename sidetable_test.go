package xgxsuppress

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestSideTable_GetOrCreateReturnsSameList(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	err := errors.New("receiver")

	l1, e1 := table.GetOrCreate(err)
	require.NoError(t, e1)
	l2, e2 := table.GetOrCreate(err)
	require.NoError(t, e2)

	assert.Same(t, l1, l2)
	assert.Equal(t, 1, table.Size())
}

func TestSideTable_GetIfPresentDoesNotCreate(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	err := errors.New("never registered")

	l, ok := table.GetIfPresent(err)
	assert.False(t, ok)
	assert.Nil(t, l)
	assert.Equal(t, 0, table.Size())

	created, cerr := table.GetOrCreate(err)
	require.NoError(t, cerr)
	found, ok := table.GetIfPresent(err)
	require.True(t, ok)
	assert.Same(t, created, found)
}

func TestSideTable_DistinctIdentitiesGetDistinctLists(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	a := errors.New("same")
	b := errors.New("same")

	la, _ := table.GetOrCreate(a)
	lb, _ := table.GetOrCreate(b)

	assert.NotSame(t, la, lb)
	assert.Equal(t, 2, table.Size())
}

func TestSideTable_RejectsIdentitylessReceiver(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	_, err := table.GetOrCreate(sliceErr{"x"})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, 0, table.Size())
}

func TestSideTable_ConcurrentGetOrCreateSingleWinner(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	err := errors.New("contended")

	const workers = 32
	lists := make([]*SuppressionList, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			l, gerr := table.GetOrCreate(err)
			if gerr == nil {
				lists[i] = l
			}
		}()
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.Same(t, lists[0], lists[i], "worker %d saw a different list", i)
	}
	assert.Equal(t, 1, table.Size())
}

func TestSideTable_EvictsCollectedKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	table := newSideTable(zap.New(core))

	keep := errors.New("kept")
	_, err := table.GetOrCreate(keep)
	require.NoError(t, err)

	func() {
		for i := range 8 {
			_, gerr := table.GetOrCreate(fmt.Errorf("transient %d", i))
			require.NoError(t, gerr)
		}
	}()
	require.Equal(t, 9, table.Size())

	require.Eventually(t, func() bool {
		runtime.GC()
		return table.Size() == 1
	}, 10*time.Second, 10*time.Millisecond)

	_, ok := table.GetIfPresent(keep)
	assert.True(t, ok, "live receivers are never evicted")
	assert.NotZero(t, logs.FilterMessage("evicted stale suppression lists").Len())
	runtime.KeepAlive(keep)
}

func TestSideTable_EvictStaleIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	table := newSideTable(zaptest.NewLogger(t))
	table.stale.push(IdentityKey{hash: 42})
	assert.Equal(t, 0, table.EvictStale())
	assert.Equal(t, 0, table.Size())
}

func TestSuppressionList_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	l := newSuppressionList(0)
	a, b := errors.New("a"), errors.New("b")
	l.Append(a)

	snap := l.Snapshot()
	l.Append(b)

	require.Len(t, snap, 1)
	assert.Equal(t, 2, l.Len())

	var seen []error
	l.Each(func(e error) { seen = append(seen, e) })
	assert.Equal(t, []error{a, b}, seen)
}

func TestSuppressionList_EmptySnapshotIsNotNil(t *testing.T) {
	t.Parallel()

	snap := newSuppressionList(0).Snapshot()
	assert.NotNil(t, snap)
	assert.Empty(t, snap)
}

func TestNewSideTable_UsesPackageLogger(t *testing.T) {
	t.Parallel()

	table := NewSideTable()
	assert.Same(t, Logger(), table.logger)
	assert.Equal(t, 0, table.Size())
}
