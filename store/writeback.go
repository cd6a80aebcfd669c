package store

import (
	"context"
	"sync"
)

var _ Store = (*Writeback)(nil)

// Writeback wraps a Store with an asynchronous save queue of depth one.
// Saves never overlap: while a write is in flight, newer blobs replace each
// other and only the latest is written next (latest-wins). The document is
// always written in full, so intermediate generations carry no information.
type Writeback struct {
	inner Store

	mu      sync.Mutex
	cond    *sync.Cond
	latest  []byte
	dirty   bool // latest not yet handed to the writer
	busy    bool // a write is in flight
	closed  bool
	lastErr error

	wg sync.WaitGroup
}

// NewWriteback starts the background writer around inner.
func NewWriteback(inner Store) *Writeback {
	w := &Writeback{inner: inner}
	w.cond = sync.NewCond(&w.mu)
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *Writeback) loop() {
	defer w.wg.Done()
	w.mu.Lock()
	for {
		for !w.dirty && !w.closed {
			w.cond.Wait()
		}
		if !w.dirty && w.closed {
			w.mu.Unlock()
			return
		}
		blob := w.latest
		w.dirty = false
		w.busy = true
		w.mu.Unlock()

		err := w.inner.Save(context.Background(), blob)

		w.mu.Lock()
		w.busy = false
		w.lastErr = err
		w.cond.Broadcast()
	}
}

// Save queues the blob for writing and returns immediately. The write error,
// if any, is reported by the next Flush or Close.
func (w *Writeback) Save(_ context.Context, blob []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return w.inner.Save(context.Background(), blob)
	}
	w.latest = append([]byte(nil), blob...)
	w.dirty = true
	w.cond.Signal()
	return nil
}

// Flush blocks until the queue is drained and returns the last write error.
func (w *Writeback) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.mu.Lock()
		for w.dirty || w.busy {
			w.cond.Wait()
		}
		w.mu.Unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Writeback) Load(ctx context.Context) ([]byte, error) { return w.inner.Load(ctx) }

func (w *Writeback) Clear(ctx context.Context) error {
	if err := w.Flush(ctx); err != nil {
		return err
	}
	return w.inner.Clear(ctx)
}

func (w *Writeback) Kind() Kind { return w.inner.Kind() }

// Close drains the queue, stops the writer and closes the wrapped store.
func (w *Writeback) Close() error {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	w.wg.Wait()

	w.mu.Lock()
	err := w.lastErr
	w.mu.Unlock()
	if cerr := w.inner.Close(); err == nil {
		err = cerr
	}
	return err
}
