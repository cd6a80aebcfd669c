// Package fortress implements a local-first personal finance ledger that
// splits a monthly surplus across user-defined funds by percentage, records
// each split as an immutable, timestamped history entry, and tracks dated
// milestones with due-date reminders.
//
// The core functionalities include:
//   - Ledger Management: a single owned Document aggregate holding the
//     surplus, the active fund allocations, the append-only investment
//     history, and the milestone list. All reads and writes go through the
//     Ledger so the in-memory model is always the source of truth.
//   - Allocation Engine: splitting a surplus across fund ratios with
//     half-up rounding to the currency's minor unit, freezing the realized
//     breakdown into each history entry.
//   - Milestone Scheduling: a pure DueReminders(now) query over dated
//     milestones, driven by an external trigger (see the remind package).
//   - Data Persistence: encoding the full document to a canonical JSON form
//     persisted through a primary/fallback durable store (see the store
//     package) and exported as timestamped backup snapshots.
//
// This package serves as the foundational logic for the `fort` command-line
// tool.
package fortress
