package renderer

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fortressfin/fortress"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	doc := fortress.NewDocument("INR")
	doc.Surplus = fortress.M(50000, "INR")
	doc.Allocations = []fortress.Allocation{
		{FundName: "ICICI Savings", Ratio: 50},
		{FundName: "Axis Short Duration", Ratio: 30},
	}
	doc.History = []fortress.HistoryEntry{
		{
			Date:    fortress.MustParseDate("2026-06-30"),
			Total:   fortress.M(40000, "INR"),
			Summary: "ICICI Savings (100%)",
		},
		{
			Date:    fortress.MustParseDate("2026-07-31"),
			Total:   fortress.M(50000, "INR"),
			Summary: "ICICI Savings (50%) | Axis Short Duration (30%)",
		},
	}
	doc.Todos = []fortress.Milestone{
		{ID: "m-2", Title: "Downpayment", Date: fortress.MustParseDate("2027-06-01")},
		{ID: "m-1", Title: "Emergency fund 6x", Date: fortress.MustParseDate("2026-08-29")},
		{ID: "m-3", Title: "Done already", Date: fortress.MustParseDate("2026-01-01"), Completed: true},
	}
	return NewReport(*doc, "primary", fortress.MustParseDate("2026-08-29"))
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)

	if r.Allocated != "80%" {
		t.Errorf("allocated = %q, want 80%%", r.Allocated)
	}
	if len(r.Funds) != 2 || r.Funds[0].Name != "ICICI Savings" {
		t.Errorf("funds = %+v", r.Funds)
	}
	if r.Funds[0].Amount != "₹25,000.00" {
		t.Errorf("fund share = %q, want ₹25,000.00", r.Funds[0].Amount)
	}

	if len(r.History) != 2 || r.History[0].Date != "2026-07-31" {
		t.Errorf("history must be most recent first, got %+v", r.History)
	}
	if r.TotalSaved != "₹90,000.00" {
		t.Errorf("total saved = %q", r.TotalSaved)
	}

	if len(r.Milestones) != 2 {
		t.Fatalf("milestone count = %d, want 2 active", len(r.Milestones))
	}
	if r.Milestones[0].Title != "Emergency fund 6x" || !r.Milestones[0].Due {
		t.Errorf("first milestone = %+v, want the due one first", r.Milestones[0])
	}
	if r.Milestones[1].Due {
		t.Errorf("future milestone flagged due: %+v", r.Milestones[1])
	}
}

// headingsOf parses markdown and returns the text of every heading, to check
// the document structure rather than raw substrings.
func headingsOf(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headings []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var b strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			headings = append(headings, b.String())
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return headings
}

func TestReportMarkdown_structure(t *testing.T) {
	md := ReportMarkdown(sampleReport(t))

	want := []string{"Fortress Ledger", "Allocations", "History", "Milestones"}
	got := headingsOf(t, md)
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, s := range []string{
		"| ICICI Savings | 50% | ₹25,000.00 |",
		"ICICI Savings (50%) | Axis Short Duration (30%)",
		"| 2026-08-29 | Emergency fund 6x | due today |",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("report markdown misses %q:\n%s", s, md)
		}
	}
}

func TestReportMarkdown_emptyDocument(t *testing.T) {
	doc := fortress.NewDocument("INR")
	r := NewReport(*doc, "fallback", fortress.MustParseDate("2026-08-29"))
	md := ReportMarkdown(r)

	for _, s := range []string{
		"*No funds configured.*",
		"*No investments logged yet.*",
		"*No active milestones.*",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("empty report misses %q:\n%s", s, md)
		}
	}
}
