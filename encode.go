package fortress

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The persisted document is a single JSON blob:
//
//	{
//	  "surplus": number,
//	  "allocations": [{"fundName": string, "ratio": number}],
//	  "history":     [{"date": string, "total": number, "summary": string}],
//	  "todos":       [{"id": string, "title": string, "date": "YYYY-MM-DD", "completed": bool}]
//	}
//
// Keys are written in a fixed order so the output is canonical; exports are
// byte-identical in structure to the persisted form.

// MarshalJSON implements the json.Marshaler interface for Allocation.
func (a Allocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("fundName", a.FundName)
	w.Append("ratio", a.Ratio)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for HistoryEntry.
// Only the frozen summary is persisted, not the structured breakdown.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("total", e.Total)
	w.Append("summary", e.Summary)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Milestone.
func (m Milestone) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", m.ID)
	w.Append("title", m.Title)
	w.Append("date", m.Date)
	w.Append("completed", m.Completed)
	return w.MarshalJSON()
}

// EncodeDocument writes the document to w in its canonical persisted form.
func EncodeDocument(w io.Writer, doc *Document) error {
	var o jsonObjectWriter
	o.Append("surplus", doc.Surplus)
	o.Append("allocations", nonNil(doc.Allocations))
	o.Append("history", nonNil(doc.History))
	o.Append("todos", nonNil(doc.Todos))
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// nonNil keeps empty collections as [] rather than null in the output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// amount-bearing fields decode as bare decimals; the currency is injected by
// the caller (it is a ledger-wide setting, not persisted per amount).
type jdocument struct {
	Surplus     decimal.Decimal `json:"surplus"`
	Allocations []jallocation   `json:"allocations"`
	History     []jentry        `json:"history"`
	Todos       []jmilestone    `json:"todos"`
}

type jallocation struct {
	FundName string  `json:"fundName"`
	Ratio    Percent `json:"ratio"`
}

type jentry struct {
	Date    Date            `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Summary string          `json:"summary"`
}

type jmilestone struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      Date   `json:"date"`
	Completed bool   `json:"completed"`
}

// DecodeDocument reads a persisted document, injecting the ledger currency
// into all amounts. A malformed blob yields a *ParseError; the caller (see
// Open) treats it as the empty default rather than failing.
func DecodeDocument(r io.Reader, currency string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	var j jdocument
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := NewDocument(currency)
	doc.Surplus = M(j.Surplus, currency)
	for _, a := range j.Allocations {
		doc.Allocations = append(doc.Allocations, Allocation{FundName: a.FundName, Ratio: a.Ratio})
	}
	for _, e := range j.History {
		doc.History = append(doc.History, HistoryEntry{
			Date:    e.Date,
			Total:   M(e.Total, currency),
			Summary: e.Summary,
		})
	}
	for _, m := range j.Todos {
		if m.ID == "" {
			// documents written before ids existed; assign one on load.
			m.ID = uuid.NewString()
		}
		doc.Todos = append(doc.Todos, Milestone{
			ID:        m.ID,
			Title:     m.Title,
			Date:      m.Date,
			Completed: m.Completed,
		})
	}
	return doc, nil
}
