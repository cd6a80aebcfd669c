package remind

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortressfin/fortress"
	"github.com/fortressfin/fortress/store"
)

type memStore struct {
	blob []byte
}

func (s *memStore) Load(context.Context) ([]byte, error) { return s.blob, nil }
func (s *memStore) Save(_ context.Context, blob []byte) error {
	s.blob = append([]byte(nil), blob...)
	return nil
}
func (s *memStore) Clear(context.Context) error { s.blob = nil; return nil }
func (s *memStore) Kind() store.Kind            { return store.Fallback }
func (s *memStore) Close() error                { return nil }

type recordingNotifier struct {
	mu     sync.Mutex
	bodies []string
	fail   error
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.bodies = append(n.bodies, body)
	return nil
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.bodies...)
}

type clock struct {
	mu  sync.Mutex
	now fortress.Date
}

func (c *clock) get() fortress.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) set(d fortress.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = d
}

func newTestRunner(t *testing.T) (*Runner, *fortress.Ledger, *recordingNotifier, *clock) {
	t.Helper()
	ledger := fortress.Open(context.Background(), &memStore{}, "INR")
	n := &recordingNotifier{}
	c := &clock{now: fortress.MustParseDate("2026-01-14")}
	return New(ledger, n, WithClock(c.get)), ledger, n, c
}

func TestCheck_notifiesDueMilestones(t *testing.T) {
	r, ledger, n, _ := newTestRunner(t)
	_, err := ledger.AddMilestone("Emergency fund 6x", "2026-01-14")
	require.NoError(t, err)
	_, err = ledger.AddMilestone("Downpayment", "2027-06-01")
	require.NoError(t, err)

	r.Check()
	assert.Equal(t, []string{"Emergency fund 6x (2026-01-14)"}, n.recorded())
}

func TestCheck_notifiesOncePerDate(t *testing.T) {
	r, ledger, n, c := newTestRunner(t)
	m, err := ledger.AddMilestone("Emergency fund 6x", "2026-01-14")
	require.NoError(t, err)

	r.Check()
	r.Check()
	r.Check()
	assert.Len(t, n.recorded(), 1, "repeated checks on the same date must not re-notify")

	// a future date for the same (still open) milestone does not re-match;
	// reopening on its exact date does
	c.set(fortress.MustParseDate("2026-01-15"))
	r.Check()
	assert.Len(t, n.recorded(), 1)

	_, err = ledger.ToggleMilestone(m.ID)
	require.NoError(t, err)
	c.set(fortress.MustParseDate("2026-01-14"))
	r.Check()
	assert.Len(t, n.recorded(), 1, "completed milestones are never due")
}

func TestCheck_retriesAfterDeliveryFailure(t *testing.T) {
	r, ledger, n, _ := newTestRunner(t)
	_, err := ledger.AddMilestone("Emergency fund 6x", "2026-01-14")
	require.NoError(t, err)

	n.fail = errors.New("notification surface unavailable")
	r.Check()
	assert.Empty(t, n.recorded())

	n.fail = nil
	r.Check()
	assert.Len(t, n.recorded(), 1, "a failed delivery is retried on the next tick")
}

func TestStart_rejectsInvalidSchedule(t *testing.T) {
	r, _, _, _ := newTestRunner(t)
	err := r.Start("every minute or so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule")
}

func TestStart_runsImmediateCheck(t *testing.T) {
	r, ledger, n, _ := newTestRunner(t)
	_, err := ledger.AddMilestone("Emergency fund 6x", "2026-01-14")
	require.NoError(t, err)

	require.NoError(t, r.Start("@every 1h"))
	defer r.Stop()

	assert.Len(t, n.recorded(), 1, "Start must check before the first tick")
}
