package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	mu      sync.Mutex
	batches [][]FileEvent
	signal  chan struct{}
}

func newFlushRecorder() *flushRecorder {
	return &flushRecorder{signal: make(chan struct{}, 10)}
}

func (r *flushRecorder) flush(events []FileEvent) {
	r.mu.Lock()
	r.batches = append(r.batches, events)
	r.mu.Unlock()
	r.signal <- struct{}{}
}

func (r *flushRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for flush")
	}
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func TestDebouncerCoalescesByPath(t *testing.T) {
	rec := newFlushRecorder()
	d := NewDebouncer(100*time.Millisecond, 100, rec.flush)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Path: "same.md", Timestamp: time.Now()})
	}
	d.Add(FileEvent{Path: "other.md", Timestamp: time.Now()})

	rec.wait(t)
	require.Equal(t, 1, rec.count())
	assert.Len(t, rec.batches[0], 2)
}

func TestDebouncerFlushesAtMaxBatch(t *testing.T) {
	rec := newFlushRecorder()
	d := NewDebouncer(time.Hour, 3, rec.flush)
	defer d.Stop()

	d.Add(FileEvent{Path: "a"})
	d.Add(FileEvent{Path: "b"})
	d.Add(FileEvent{Path: "c"})

	rec.wait(t)
	assert.Equal(t, 1, rec.count())
	assert.Len(t, rec.batches[0], 3)
}

func TestDebouncerSerializesFlushes(t *testing.T) {
	var mu sync.Mutex
	active, maxActive := 0, 0
	flushed := make(chan struct{}, 10)

	onFlush := func(events []FileEvent) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()

		// Model a slow rescan so a second batch arrives mid-flush.
		time.Sleep(150 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		flushed <- struct{}{}
	}

	d := NewDebouncer(30*time.Millisecond, 100, onFlush)
	defer d.Stop()

	d.Add(FileEvent{Path: "first.md"})
	time.Sleep(80 * time.Millisecond)
	d.Add(FileEvent{Path: "second.md"})

	for i := 0; i < 2; i++ {
		select {
		case <-flushed:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for flush")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxActive, "flush callbacks must not overlap")
}

func TestDebouncerStopFlushesPending(t *testing.T) {
	rec := newFlushRecorder()
	d := NewDebouncer(time.Hour, 100, rec.flush)

	d.Add(FileEvent{Path: "pending"})
	d.Stop()

	rec.wait(t)
	assert.Equal(t, 1, rec.count())

	// Events after Stop are discarded.
	d.Add(FileEvent{Path: "late"})
	assert.Equal(t, 1, rec.count())
}
