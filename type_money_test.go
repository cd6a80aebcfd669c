package fortress

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{m: M(50000, "INR"), want: "₹50,000.00"},
		{m: M(0, "INR"), want: "₹0.00"},
		{m: M(1234.5, "EUR"), want: "€1,234.50"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoney_addKeepsCurrency(t *testing.T) {
	sum := M(0, "").Add(M(100, "INR"))
	if sum.Currency() != "INR" {
		t.Errorf("currency = %q, want INR", sum.Currency())
	}
	if !sum.Equal(M(100, "INR")) {
		t.Errorf("sum = %s", sum)
	}
}
