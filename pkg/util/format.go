package util

import (
	"fmt"
	"math"
)

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatLakh formats an absolute price in the 100,000-unit denomination
// with a currency prefix, e.g. 11212500 -> "₹ 112.13 Lakh". Rounds
// half-away-from-zero like Round2, not Sprintf's half-to-even.
func FormatLakh(total float64) string {
	return fmt.Sprintf("₹ %.2f Lakh", Round2(total/100000))
}
