package fortress

import (
	"math"
	"strconv"
)

// Percent is a fund allocation ratio, in [0, 100].
type Percent float64

// CheckRatio validates that p is a finite ratio between 0 and 100 inclusive.
// Zero is permitted, and the active ratios are not required to sum to 100:
// unallocated surplus is the user's safety net.
func CheckRatio(p Percent) error {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Validationf("ratio must be a finite number")
	}
	if f < 0 || f > 100 {
		return Validationf("ratio %s out of range [0, 100]", p)
	}
	return nil
}

// String formats the ratio without trailing zeros: "50%", "12.5%".
func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

func (p Percent) Equal(q Percent) bool {
	// compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}
