package fortress

import (
	"fmt"
	"strings"
)

// summarySeparator joins the per-fund parts of a history entry summary.
const summarySeparator = " | "

// emptySummary is frozen into entries logged with no funds configured.
const emptySummary = "no allocations configured"

// LogInvestment splits surplus across the active funds in display order and
// commits the result as a new history entry, dated with the ledger clock.
//
// Each share is rounded half-up to the currency's minor unit independently;
// there is no residual-distribution step, so the rounded amounts may differ
// from surplus by a few minor units at extreme ratios. The entry's ratios
// are taken verbatim from the funds at logging time, not recomputed to force
// a sum of 100.
//
// The created entry is returned so callers can render immediate feedback
// without re-reading storage. A *StorageError return means the entry is in
// memory but not yet durable.
func (l *Ledger) LogInvestment(surplus Money) (HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !surplus.IsPositive() {
		return HistoryEntry{}, Validationf("surplus must be greater than zero")
	}

	entry := HistoryEntry{
		Date:      l.now(),
		Total:     surplus,
		Breakdown: make([]Share, 0, len(l.doc.Allocations)),
	}

	parts := make([]string, 0, len(l.doc.Allocations))
	for _, a := range l.doc.Allocations {
		entry.Breakdown = append(entry.Breakdown, Share{
			FundName: a.FundName,
			Ratio:    a.Ratio,
			Amount:   surplus.Share(a.Ratio).Round(),
		})
		parts = append(parts, fmt.Sprintf("%s (%s)", a.FundName, a.Ratio))
	}

	if len(parts) == 0 {
		entry.Summary = emptySummary
	} else {
		entry.Summary = strings.Join(parts, summarySeparator)
	}

	l.doc.History = append(l.doc.History, entry)
	return entry, l.persist()
}
