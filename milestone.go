package fortress

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Milestone is a dated reminder item, independent of fund allocations.
type Milestone struct {
	ID        string
	Title     string
	Date      Date // target date
	Completed bool
}

// AddMilestone creates a milestone from a title and a target date in strict
// "YYYY-MM-DD" form, and returns it with its assigned ID.
func (l *Ledger) AddMilestone(title, target string) (Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Milestone{}, Validationf("milestone title cannot be empty")
	}
	on, err := ParseDate(target)
	if err != nil {
		return Milestone{}, err
	}
	m := Milestone{ID: uuid.NewString(), Title: title, Date: on}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.Todos = append(l.doc.Todos, m)
	return m, l.persist()
}

// milestoneIndex returns the position of the milestone with this id, or -1.
// Called with l.mu held.
func (l *Ledger) milestoneIndex(id string) int {
	for i, m := range l.doc.Todos {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// ToggleMilestone flips the completed flag and returns the updated milestone.
func (l *Ledger) ToggleMilestone(id string) (Milestone, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.milestoneIndex(id)
	if i < 0 {
		return Milestone{}, &NotFoundError{Entity: "milestone", Name: id}
	}
	l.doc.Todos[i].Completed = !l.doc.Todos[i].Completed
	return l.doc.Todos[i], l.persist()
}

// RemoveMilestone deletes a milestone.
func (l *Ledger) RemoveMilestone(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.milestoneIndex(id)
	if i < 0 {
		return &NotFoundError{Entity: "milestone", Name: id}
	}
	l.doc.Todos = append(l.doc.Todos[:i], l.doc.Todos[i+1:]...)
	return l.persist()
}

// Milestones returns a copy of all milestones in insertion order.
func (l *Ledger) Milestones() []Milestone {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Milestone{}, l.doc.Todos...)
}

// ActiveMilestones returns the non-completed milestones sorted ascending by
// target date. The sort is stable: ties keep insertion order, so positions
// are deterministic across renders.
func (l *Ledger) ActiveMilestones() []Milestone {
	l.mu.Lock()
	defer l.mu.Unlock()
	active := make([]Milestone, 0, len(l.doc.Todos))
	for _, m := range l.doc.Todos {
		if !m.Completed {
			active = append(active, m)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Date.Before(active[j].Date)
	})
	return active
}

// DueReminders returns the milestones whose target date equals now exactly
// and which are not completed. It holds no timer and persists no
// already-notified state: each call for the same date re-reports the same
// items, and the notification layer suppresses duplicates within a session.
func (l *Ledger) DueReminders(now Date) []Milestone {
	l.mu.Lock()
	defer l.mu.Unlock()
	var due []Milestone
	for _, m := range l.doc.Todos {
		if !m.Completed && m.Date == now {
			due = append(due, m)
		}
	}
	return due
}
