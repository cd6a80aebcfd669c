// Package remind drives milestone reminder checks from a periodic trigger.
// The engine itself only answers "what is due right now" (DueReminders);
// this package supplies the timer, the notification sink, and the
// per-session de-duplication the engine contract leaves to its caller.
package remind

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/fortressfin/fortress"
)

// Notifier delivers a user-visible reminder.
type Notifier interface {
	Notify(title, body string) error
}

// DefaultSchedule checks once a minute, which is plenty for day-granularity
// reminders.
const DefaultSchedule = "@every 1m"

// Runner periodically asks the ledger for due milestones and notifies each
// at most once per date for the lifetime of the runner.
type Runner struct {
	ledger   *fortress.Ledger
	notifier Notifier
	now      func() fortress.Date
	log      *slog.Logger
	cron     *cron.Cron

	mu       sync.Mutex
	notified map[string]fortress.Date // milestone id to last notified date
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock injects the clock used to evaluate due dates.
func WithClock(now func() fortress.Date) Option {
	return func(r *Runner) { r.now = now }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// New creates a stopped Runner.
func New(ledger *fortress.Ledger, notifier Notifier, opts ...Option) *Runner {
	r := &Runner{
		ledger:   ledger,
		notifier: notifier,
		now:      fortress.Today,
		log:      slog.Default(),
		notified: make(map[string]fortress.Date),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start runs an immediate check and then checks on the given cron schedule
// (e.g. "@every 1m", "0 9 * * *"). An empty schedule means DefaultSchedule.
func (r *Runner) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	r.cron = cron.New()
	if _, err := r.cron.AddFunc(schedule, r.Check); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	r.Check()
	r.cron.Start()
	r.log.Info("reminder runner started", "schedule", schedule)
	return nil
}

// Stop cancels the periodic trigger and waits for a running check to finish.
func (r *Runner) Stop() {
	if r.cron == nil {
		return
	}
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("reminder runner stopped")
}

// Check evaluates due reminders once. It is safe to call concurrently with
// the schedule; notification state is shared so an item is still reported
// only once per date.
func (r *Runner) Check() {
	now := r.now()
	for _, m := range r.ledger.DueReminders(now) {
		r.mu.Lock()
		last, seen := r.notified[m.ID]
		if seen && last == now {
			r.mu.Unlock()
			continue
		}
		r.notified[m.ID] = now
		r.mu.Unlock()

		if err := r.notifier.Notify("Milestone due today", fmt.Sprintf("%s (%s)", m.Title, m.Date)); err != nil {
			r.log.Warn("could not deliver reminder", "milestone", m.Title, "err", err)
			// allow a retry on the next tick
			r.mu.Lock()
			delete(r.notified, m.ID)
			r.mu.Unlock()
		}
	}
}
