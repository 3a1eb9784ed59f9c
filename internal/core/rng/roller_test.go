package rng

import (
	"math/rand"
	"testing"
)

func TestRollerIsDeterministicForSeed(t *testing.T) {
	a := NewRoller(rand.New(rand.NewSource(7)))
	b := NewSeeded(7)

	for i := 0; i < 50; i++ {
		if x, y := a.Range(0, 10), b.Range(0, 10); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		v := r.Range(1.4, 3.5)
		if v < 1.4 || v >= 3.5 {
			t.Fatalf("Range out of bounds: %v", v)
		}
	}
}

func TestIntnNonPositive(t *testing.T) {
	r := NewSeeded(1)
	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	if got := r.Intn(-3); got != 0 {
		t.Errorf("Intn(-3) = %d, want 0", got)
	}
}

func TestPickReturnsMember(t *testing.T) {
	r := NewSeeded(3)
	items := []string{"cod", "biscuit", "gravy"}
	for i := 0; i < 100; i++ {
		got := Pick(r, items)
		found := false
		for _, it := range items {
			if it == got {
				found = true
			}
		}
		if !found {
			t.Fatalf("Pick returned %q, not in items", got)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	r := NewSeeded(5)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}
