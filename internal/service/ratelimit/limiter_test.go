package ratelimit

import "testing"

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("first key should be exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("second key should have its own bucket")
	}
}
