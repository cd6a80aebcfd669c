// Package renderer produces markdown reports of the ledger document.
// Rendering to the terminal is the caller's concern; everything here is a
// pure markdown string.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/template"

	"github.com/fortressfin/fortress"
)

//go:embed templates/*.md
var templates embed.FS

// Report is the view model of the ledger summary.
// Amounts are preformatted strings so templates stay dumb.
type Report struct {
	// Date the report was generated.
	Date fortress.Date
	// Backend names the storage backend ("primary" or "fallback").
	Backend string
	// Surplus is the configured monthly surplus.
	Surplus string
	// TotalSaved is the cumulative total over all history entries.
	TotalSaved string
	// Allocated is the realized sum of the active ratios, reported verbatim.
	Allocated string
	// Funds lists the active allocations in display order.
	Funds []FundRow
	// History lists entries most recent first.
	History []HistoryRow
	// Milestones lists active milestones ascending by target date.
	Milestones []MilestoneRow
}

// FundRow is one active fund allocation.
type FundRow struct {
	Name   string
	Ratio  string
	Amount string // share of the current surplus
}

// HistoryRow is one logged investment.
type HistoryRow struct {
	Date    string
	Total   string
	Summary string
}

// MilestoneRow is one active milestone.
type MilestoneRow struct {
	Date  string
	Title string
	Due   bool
}

// NewReport builds the report view from a document copy.
func NewReport(doc fortress.Document, backend string, now fortress.Date) *Report {
	r := &Report{
		Date:    now,
		Backend: backend,
		Surplus: doc.Surplus.String(),
	}

	total := fortress.M(0, doc.Surplus.Currency())
	var allocated fortress.Percent
	for _, a := range doc.Allocations {
		allocated += a.Ratio
		r.Funds = append(r.Funds, FundRow{
			Name:   a.FundName,
			Ratio:  a.Ratio.String(),
			Amount: doc.Surplus.Share(a.Ratio).Round().String(),
		})
	}
	r.Allocated = allocated.String()

	for i := len(doc.History) - 1; i >= 0; i-- {
		e := doc.History[i]
		total = total.Add(e.Total)
		r.History = append(r.History, HistoryRow{
			Date:    e.Date.String(),
			Total:   e.Total.String(),
			Summary: e.Summary,
		})
	}
	r.TotalSaved = total.String()

	active := make([]fortress.Milestone, 0, len(doc.Todos))
	for _, m := range doc.Todos {
		if !m.Completed {
			active = append(active, m)
		}
	}
	// keep the stable ascending order contract of the model view
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Date.Before(active[j].Date)
	})
	for _, m := range active {
		r.Milestones = append(r.Milestones, MilestoneRow{
			Date:  m.Date.String(),
			Title: m.Title,
			Due:   m.Date == now,
		})
	}
	return r
}

// ReportMarkdown renders the report to a markdown string.
func ReportMarkdown(r *Report) string {
	partials := map[string]string{
		"report_funds":      "report_funds.md",
		"report_history":    "report_history.md",
		"report_milestones": "report_milestones.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, readErr := fs.ReadFile(templates, "templates/"+file)
		if readErr != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
