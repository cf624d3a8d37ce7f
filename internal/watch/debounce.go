package watch

import (
	"sync"
	"time"
)

type FileEvent struct {
	Path      string
	Timestamp time.Time
}

// Debouncer coalesces bursts of file events into batches, keyed by
// path so a rapidly rewritten file counts once. Batches are handed to
// a single worker goroutine, so one flush callback always finishes
// before the next begins.
type Debouncer struct {
	window   time.Duration
	maxBatch int

	mu      sync.Mutex
	events  map[string]FileEvent
	timer   *time.Timer
	stopped bool

	batches chan []FileEvent
	quit    chan struct{}
	done    chan struct{}
}

func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]FileEvent)) *Debouncer {
	d := &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		events:   make(map[string]FileEvent),
		batches:  make(chan []FileEvent, 16),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go d.run(onFlush)
	return d
}

// run is the only caller of onFlush. Batches are processed one at a
// time in arrival order; on shutdown the queue is drained first.
func (d *Debouncer) run(onFlush func([]FileEvent)) {
	defer close(d.done)

	for {
		select {
		case batch := <-d.batches:
			if onFlush != nil {
				onFlush(batch)
			}
		case <-d.quit:
			for {
				select {
				case batch := <-d.batches:
					if onFlush != nil {
						onFlush(batch)
					}
				default:
					return
				}
			}
		}
	}
}

func (d *Debouncer) Add(event FileEvent) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.events[event.Path] = event

	if len(d.events) >= d.maxBatch {
		d.enqueueLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.enqueueLocked()
	})

	d.mu.Unlock()
}

// enqueueLocked is entered holding the mutex and releases it before
// the channel send, so a busy worker never blocks Add.
func (d *Debouncer) enqueueLocked() {
	events := make([]FileEvent, 0, len(d.events))
	for _, event := range d.events {
		events = append(events, event)
	}

	d.events = make(map[string]FileEvent)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(events) > 0 {
		d.batches <- events
	}
}

// Stop flushes any pending events, waits for the worker to finish the
// queue, and discards everything added afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.enqueueLocked()

	close(d.quit)
	<-d.done
}
