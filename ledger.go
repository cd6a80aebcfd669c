package fortress

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/fortressfin/fortress/store"
)

// Allocation is a named fund with the percentage of surplus directed to it.
// Names are unique within the active set. Ratios are not required to sum to
// 100: the remainder is the unallocated safety net.
type Allocation struct {
	FundName string
	Ratio    Percent
}

// Share is one fund's portion of a logged investment, with the ratio taken
// verbatim at logging time and the amount rounded to the currency minor unit.
type Share struct {
	FundName string
	Ratio    Percent
	Amount   Money
}

// HistoryEntry is an immutable record of one completed allocation event.
// The breakdown is frozen into Summary at creation and stays decoupled from
// the current fund definitions: removing or editing a fund never rewrites
// past entries.
type HistoryEntry struct {
	Date    Date
	Total   Money
	Summary string
	// Breakdown is computed at logging time for immediate feedback; only its
	// Summary projection is persisted.
	Breakdown []Share
}

// Document is the root aggregate and the sole unit of persistence: every
// mutation to any sub-entity is followed by a full-document write. It is
// owned exclusively by the Ledger.
type Document struct {
	Surplus     Money
	Allocations []Allocation
	History     []HistoryEntry
	Todos       []Milestone
}

// NewDocument returns the empty default document for a currency.
func NewDocument(currency string) *Document {
	return &Document{
		Surplus:     M(0, currency),
		Allocations: []Allocation{},
		History:     []HistoryEntry{},
		Todos:       []Milestone{},
	}
}

// Ledger owns the Document and is the single mutation path. All mutators
// change the in-memory model first and then trigger a full-document write;
// a failed write is returned as a *StorageError while the mutation is
// retained (the model is the source of truth, the store a downstream
// mirror).
type Ledger struct {
	mu       sync.Mutex
	doc      *Document
	st       store.Store
	currency string
	now      func() Date
	dirty    bool // in-memory model ahead of the durable store
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock injects the clock used to date new history entries.
func WithClock(now func() Date) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a Ledger around an existing document.
func NewLedger(doc *Document, st store.Store, opts ...Option) *Ledger {
	l := &Ledger{doc: doc, st: st, currency: doc.Surplus.Currency(), now: Today}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Open loads the persisted document from st. An absent or corrupt document
// yields the empty default; load never fails past this boundary.
func Open(ctx context.Context, st store.Store, currency string, opts ...Option) *Ledger {
	doc := NewDocument(currency)
	blob, err := st.Load(ctx)
	switch {
	case err != nil:
		slog.Warn("could not load ledger document, starting empty", "err", err)
	case len(blob) > 0:
		d, err := DecodeDocument(bytes.NewReader(blob), currency)
		if err != nil {
			slog.Warn("ignoring corrupt ledger document, starting empty", "err", err)
		} else {
			doc = d
		}
	}
	return NewLedger(doc, st, opts...)
}

// Document returns a deep copy of the current document, safe to render or
// export without holding any lock.
func (l *Ledger) Document() Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyDocument(l.doc)
}

func copyDocument(doc *Document) Document {
	cp := Document{
		Surplus:     doc.Surplus,
		Allocations: append([]Allocation{}, doc.Allocations...),
		History:     append([]HistoryEntry{}, doc.History...),
		Todos:       append([]Milestone{}, doc.Todos...),
	}
	for i, e := range cp.History {
		cp.History[i].Breakdown = append([]Share(nil), e.Breakdown...)
	}
	return cp
}

// Kind reports which storage backend the ledger persists to.
func (l *Ledger) Kind() store.Kind { return l.st.Kind() }

// Dirty reports whether the in-memory model holds changes the durable store
// does not.
func (l *Ledger) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// persist writes the full document. Called with l.mu held.
func (l *Ledger) persist() error {
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, l.doc); err != nil {
		l.dirty = true
		return &StorageError{Op: "save", Err: err}
	}
	if err := l.st.Save(context.Background(), buf.Bytes()); err != nil {
		l.dirty = true
		return &StorageError{Op: "save", Err: err}
	}
	l.dirty = false
	return nil
}

// fundIndex returns the position of the named fund, or -1. Names match
// case-sensitively and exactly. Called with l.mu held.
func (l *Ledger) fundIndex(name string) int {
	for i, a := range l.doc.Allocations {
		if a.FundName == name {
			return i
		}
	}
	return -1
}

// AddFund appends a new fund to the active set.
func (l *Ledger) AddFund(name string, ratio Percent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if name == "" {
		return Validationf("fund name cannot be empty")
	}
	if l.fundIndex(name) >= 0 {
		return Validationf("fund %q already exists", name)
	}
	if err := CheckRatio(ratio); err != nil {
		return err
	}
	l.doc.Allocations = append(l.doc.Allocations, Allocation{FundName: name, Ratio: ratio})
	return l.persist()
}

// UpdateFundRatio changes the ratio of an existing fund.
func (l *Ledger) UpdateFundRatio(name string, ratio Percent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := CheckRatio(ratio); err != nil {
		return err
	}
	i := l.fundIndex(name)
	if i < 0 {
		return &NotFoundError{Entity: "fund", Name: name}
	}
	l.doc.Allocations[i].Ratio = ratio
	return l.persist()
}

// RemoveFund removes a fund from the active set. Past history entries keep
// their frozen breakdown; removal is destructive to future entries only,
// which is why callers must confirm it first.
func (l *Ledger) RemoveFund(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.fundIndex(name)
	if i < 0 {
		return &NotFoundError{Entity: "fund", Name: name}
	}
	l.doc.Allocations = append(l.doc.Allocations[:i], l.doc.Allocations[i+1:]...)
	return l.persist()
}

// Funds returns a copy of the active fund allocations in display order.
func (l *Ledger) Funds() []Allocation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Allocation{}, l.doc.Allocations...)
}

// Allocated reports the sum of the active ratios. It is not constrained to
// 100; the remainder is unallocated surplus.
func (l *Ledger) Allocated() Percent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum Percent
	for _, a := range l.doc.Allocations {
		sum += a.Ratio
	}
	return sum
}

// SetSurplus records the monthly amount available for allocation.
func (l *Ledger) SetSurplus(amount Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount.IsNegative() {
		return Validationf("surplus cannot be negative")
	}
	l.doc.Surplus = amount
	return l.persist()
}

// Surplus returns the configured monthly surplus.
func (l *Ledger) Surplus() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Surplus
}

// History returns a copy of the history entries in chronological order.
func (l *Ledger) History() []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]HistoryEntry{}, l.doc.History...)
}

// TotalSaved returns the sum of totals across all history entries. Pure
// read; returns zero on empty history.
func (l *Ledger) TotalSaved() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := M(0, l.currency)
	for _, e := range l.doc.History {
		total = total.Add(e.Total)
	}
	return total
}

// ClearHistory irreversibly deletes all history entries. The model performs
// no confirmation itself; that is the caller's concern.
func (l *Ledger) ClearHistory() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.History = []HistoryEntry{}
	return l.persist()
}
