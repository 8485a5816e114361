package flow

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// CursorList is a cached, explicitly refreshable view over a query's
// result rows. Refresh re-executes the statement and swaps the cached
// window in one atomic store, so a concurrent reader observes either the
// old window or the new one in full, never a blend. The backing cursor is
// drained and released inside Refresh, which keeps at most one cursor open
// per instance at any time.
//
// A CursorList does not watch the store on its own; an external change
// source decides when Refresh runs, either directly or through OnChange.
type CursorList[E Entity] struct {
	stmt   *Where[E]
	win    atomic.Pointer[window]
	sf     singleflight.Group
	closed atomic.Bool
}

func newCursorList[E Entity](stmt *Where[E]) *CursorList[E] {
	return &CursorList[E]{stmt: stmt}
}

// Refresh re-executes the statement and atomically replaces the cached
// window. Concurrent calls collapse into one execution.
func (c *CursorList[E]) Refresh() error {
	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		rows, err := c.stmt.Query()
		if err != nil {
			return nil, err
		}
		if rows == nil {
			c.win.Store(&window{})
			return nil, nil
		}
		defer c.stmt.release(rows)
		w, err := captureWindow(rows)
		if err != nil {
			return nil, err
		}
		c.win.Store(w)
		return nil, nil
	})
	return err
}

func (c *CursorList[E]) Len() int {
	w := c.win.Load()
	if w == nil {
		return 0
	}
	return len(w.records)
}

// Item decodes the row at the given position of the current window.
func (c *CursorList[E]) Item(i int) (E, error) {
	var zero E
	w := c.win.Load()
	if w == nil || i < 0 || i >= len(w.records) {
		return zero, &ArgumentError{Op: "Item", Reason: "position out of range"}
	}
	return c.decode(w, i)
}

// All decodes the entire current window. The whole result comes from one
// window generation.
func (c *CursorList[E]) All() ([]E, error) {
	w := c.win.Load()
	out := make([]E, 0)
	if w == nil {
		return out, nil
	}
	for i := range w.records {
		e, err := c.decode(w, i)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *CursorList[E]) decode(w *window, i int) (E, error) {
	var e E
	if err := newBinder(c.stmt.from.schema).decodeRecord(w, i, &e); err != nil {
		var zero E
		return zero, err
	}
	return e, nil
}

// Close drops the cached window. Later reads see an empty list until the
// next Refresh.
func (c *CursorList[E]) Close() {
	c.closed.Store(true)
	c.win.Store(nil)
}

// OnChange subscribes the list to change events for its table and
// refreshes on each one until the returned stop function runs. Refresh
// failures are logged and the subscription stays live.
func (c *CursorList[E]) OnChange(bus *ChangeBus) (stop func()) {
	events, cancel := bus.Subscribe(c.stmt.from.schema.Table)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case _, open := <-events:
				if !open {
					return
				}
				if c.closed.Load() {
					continue
				}
				if err := c.Refresh(); err != nil {
					c.stmt.from.schema.getConnection().logger.Errorf("refreshing list for %s: %s", c.stmt.from.schema.Table, err)
				}
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}
}

// QueryList extends CursorList with per-position decode memoization. A
// memo entry lives as long as the window generation it was decoded from;
// refresh or close invalidates it.
type QueryList[E Entity] struct {
	*CursorList[E]
	mu      sync.Mutex
	memoGen *window
	memo    map[int]E
}

func (l *QueryList[E]) Item(i int) (E, error) {
	w := l.win.Load()

	l.mu.Lock()
	if l.memoGen != w {
		l.memo = map[int]E{}
		l.memoGen = w
	}
	if e, hit := l.memo[i]; hit {
		l.mu.Unlock()
		return e, nil
	}
	l.mu.Unlock()

	var zero E
	if w == nil || i < 0 || i >= len(w.records) {
		return zero, &ArgumentError{Op: "Item", Reason: "position out of range"}
	}
	e, err := l.decode(w, i)
	if err != nil {
		return zero, err
	}

	l.mu.Lock()
	if l.memoGen == w {
		l.memo[i] = e
	}
	l.mu.Unlock()
	return e, nil
}
