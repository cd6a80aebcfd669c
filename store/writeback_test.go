package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStore records saves and can hold the writer goroutine inside Save
// until released, to observe coalescing.
type blockingStore struct {
	mu     sync.Mutex
	saves  []string
	gate   chan struct{} // when non-nil, Save waits on it
	failWith error
}

func (s *blockingStore) Load(context.Context) ([]byte, error) { return nil, nil }

func (s *blockingStore) Save(_ context.Context, blob []byte) error {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.saves = append(s.saves, string(blob))
	return nil
}

func (s *blockingStore) Clear(context.Context) error { return nil }
func (s *blockingStore) Kind() Kind                  { return Fallback }
func (s *blockingStore) Close() error                { return nil }

func (s *blockingStore) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saves...)
}

func TestWriteback_flushWritesLatest(t *testing.T) {
	ctx := context.Background()
	inner := &blockingStore{}
	w := NewWriteback(inner)
	defer w.Close()

	require.NoError(t, w.Save(ctx, []byte("v1")))
	require.NoError(t, w.Flush(ctx))

	assert.Equal(t, []string{"v1"}, inner.recorded())
}

func TestWriteback_coalescesToLatest(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	inner := &blockingStore{gate: gate}
	w := NewWriteback(inner)

	// the first save occupies the writer; the next three land while it is
	// busy and must collapse into a single write of the newest blob
	require.NoError(t, w.Save(ctx, []byte("v1")))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Save(ctx, []byte("v2")))
	require.NoError(t, w.Save(ctx, []byte("v3")))
	require.NoError(t, w.Save(ctx, []byte("v4")))
	close(gate)

	require.NoError(t, w.Close())
	assert.Equal(t, []string{"v1", "v4"}, inner.recorded())
}

func TestWriteback_flushReportsWriteError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	inner := &blockingStore{failWith: boom}
	w := NewWriteback(inner)
	defer w.Close()

	require.NoError(t, w.Save(ctx, []byte("v1")), "Save is asynchronous and must not surface the error")
	assert.ErrorIs(t, w.Flush(ctx), boom)
}

func TestWriteback_flushHonorsContext(t *testing.T) {
	gate := make(chan struct{})
	inner := &blockingStore{gate: gate}
	w := NewWriteback(inner)

	require.NoError(t, w.Save(context.Background(), []byte("v1")))
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Flush(ctx), context.DeadlineExceeded)

	close(gate)
	require.NoError(t, w.Close())
}

func TestWriteback_closeDrainsQueue(t *testing.T) {
	inner := &blockingStore{}
	w := NewWriteback(inner)

	require.NoError(t, w.Save(context.Background(), []byte("v1")))
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"v1"}, inner.recorded())
}
