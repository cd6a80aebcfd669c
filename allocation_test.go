package fortress

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLogInvestment_splitsSurplusByRatio(t *testing.T) {
	ledger, _ := newTestLedger(t)
	funds := []struct {
		name  string
		ratio Percent
	}{
		{"ICICI Savings", 50},
		{"Axis Short Duration", 30},
		{"ICICI BAF", 20},
	}
	for _, f := range funds {
		if err := ledger.AddFund(f.name, f.ratio); err != nil {
			t.Fatal(err)
		}
	}

	entry, err := ledger.LogInvestment(M(50000, "INR"))
	if err != nil {
		t.Fatalf("LogInvestment() returned %v", err)
	}

	if got, want := entry.Date, MustParseDate("2026-08-29"); got != want {
		t.Errorf("entry date = %s, want %s", got, want)
	}
	if !entry.Total.Equal(M(50000, "INR")) {
		t.Errorf("entry total = %s, want ₹50,000.00", entry.Total)
	}

	wantAmounts := []int{25000, 15000, 10000}
	if len(entry.Breakdown) != len(wantAmounts) {
		t.Fatalf("breakdown length = %d, want %d", len(entry.Breakdown), len(wantAmounts))
	}
	for i, want := range wantAmounts {
		if got := entry.Breakdown[i].Amount; !got.Equal(M(want, "INR")) {
			t.Errorf("breakdown[%d] = %s, want %d", i, got, want)
		}
		if got, want := entry.Breakdown[i].FundName, funds[i].name; got != want {
			t.Errorf("breakdown[%d] fund = %q, want %q (display order)", i, got, want)
		}
	}

	wantSummary := "ICICI Savings (50%) | Axis Short Duration (30%) | ICICI BAF (20%)"
	if entry.Summary != wantSummary {
		t.Errorf("summary = %q, want %q", entry.Summary, wantSummary)
	}

	if got := len(ledger.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestLogInvestment_rejectsNonPositiveSurplus(t *testing.T) {
	ledger, st := newTestLedger(t)

	for _, amount := range []int{0, -50000} {
		_, err := ledger.LogInvestment(M(amount, "INR"))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("LogInvestment(%d) = %v, want ValidationError", amount, err)
		}
	}
	if got := len(ledger.History()); got != 0 {
		t.Errorf("rejected investments appended to history, length = %d", got)
	}
	if st.saves != 0 {
		t.Errorf("rejected investments triggered %d saves", st.saves)
	}
}

func TestLogInvestment_noFundsConfigured(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entry, err := ledger.LogInvestment(M(50000, "INR"))
	if err != nil {
		t.Fatalf("LogInvestment() with no funds returned %v", err)
	}
	if len(entry.Breakdown) != 0 {
		t.Errorf("breakdown length = %d, want 0", len(entry.Breakdown))
	}
	if entry.Summary != "no allocations configured" {
		t.Errorf("summary = %q", entry.Summary)
	}
	if got, want := ledger.TotalSaved(), M(50000, "INR"); !got.Equal(want) {
		t.Errorf("TotalSaved() = %s, want %s", got, want)
	}
}

func TestLogInvestment_ratiosNotForcedToSum100(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.AddFund("Savings", 40); err != nil {
		t.Fatal(err)
	}
	if err := ledger.AddFund("BAF", 25); err != nil {
		t.Fatal(err)
	}

	entry, err := ledger.LogInvestment(M(10000, "INR"))
	if err != nil {
		t.Fatal(err)
	}
	// ratios are reported verbatim, the unallocated 35% simply stays out
	if want := "Savings (40%) | BAF (25%)"; entry.Summary != want {
		t.Errorf("summary = %q, want %q", entry.Summary, want)
	}
	allocated := entry.Breakdown[0].Amount.Add(entry.Breakdown[1].Amount)
	if want := M(6500, "INR"); !allocated.Equal(want) {
		t.Errorf("allocated sum = %s, want %s", allocated, want)
	}
}

func TestShare_unroundedSumEqualsSurplus(t *testing.T) {
	// the sum of unrounded shares is exact whenever ratios sum to 100;
	// rounding each share independently may then deviate by at most
	// half a minor unit per fund.
	surplus := M(decimal.RequireFromString("33333.33"), "INR")
	ratios := []Percent{33.33, 33.33, 33.34}

	sum := M(0, "INR")
	rounded := M(0, "INR")
	for _, r := range ratios {
		share := surplus.Share(r)
		sum = sum.Add(share)
		rounded = rounded.Add(share.Round())
	}

	if !sum.Equal(surplus) {
		t.Errorf("unrounded share sum = %s, want %s exactly", sum.Decimal(), surplus.Decimal())
	}

	deviation := rounded.Sub(surplus).Decimal().Abs()
	bound := decimal.RequireFromString("0.005").Mul(decimal.NewFromInt(int64(len(ratios))))
	if deviation.GreaterThan(bound) {
		t.Errorf("rounded sum deviates by %s, bound %s", deviation, bound)
	}
}

func TestShare_halfUpRounding(t *testing.T) {
	testCases := []struct {
		surplus string
		ratio   Percent
		want    string
	}{
		{surplus: "100.10", ratio: 33.33, want: "33.36"}, // 33.363333 rounds down
		{surplus: "0.03", ratio: 50, want: "0.02"},       // 0.015 rounds half up
		{surplus: "1000", ratio: 0, want: "0"},
		{surplus: "50000", ratio: 100, want: "50000"},
	}
	for _, tc := range testCases {
		got := M(decimal.RequireFromString(tc.surplus), "INR").Share(tc.ratio).Round()
		if !got.Decimal().Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("Share(%s, %s).Round() = %s, want %s", tc.surplus, tc.ratio, got.Decimal(), tc.want)
		}
	}
}
