package util

import "testing"

func TestRound2(t *testing.T) {
	if got := Round2(7474.4999); got != 7474.5 {
		t.Fatalf("unexpected %v", got)
	}
	if got := Round2(0.005); got != 0.01 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(1.25); got != 1.3 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestFormatLakh(t *testing.T) {
	if got := FormatLakh(11212500); got != "₹ 112.13 Lakh" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatLakh(12500); got != "₹ 0.13 Lakh" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatLakh(0); got != "₹ 0.00 Lakh" {
		t.Fatalf("unexpected %q", got)
	}
}
