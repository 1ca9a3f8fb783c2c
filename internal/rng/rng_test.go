package rng

import (
	"math"
	"testing"
)

func TestGeneratorKnownSequence(t *testing.T) {
	tests := []struct {
		seed uint32
		want []float64
	}{
		{seed: 42, want: []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099}},
		{seed: 0, want: []float64{0.26642920868471265, 0.0003297457005828619}},
	}

	for _, tt := range tests {
		g := New(tt.seed)
		for i, want := range tt.want {
			got := g.Float()
			if math.Abs(got-want) > 1e-15 {
				t.Errorf("seed %d roll %d = %v, want %v", tt.seed, i, got, want)
			}
		}
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	seeds := []uint32{0, 1, 7, 12345, 0x7fffffff, 0xffffffff}
	for _, seed := range seeds {
		a := New(seed)
		b := New(seed)
		for i := 0; i < 1000; i++ {
			va, vb := a.Float(), b.Float()
			if va != vb {
				t.Fatalf("seed %d diverged at roll %d: %v != %v", seed, i, va, vb)
			}
			if va < 0 || va >= 1 {
				t.Fatalf("seed %d roll %d out of range: %v", seed, i, va)
			}
		}
	}
}

func TestIntBounds(t *testing.T) {
	g := New(99)
	for i := 0; i < 10000; i++ {
		v := g.Int(3, 8)
		if v < 3 || v >= 8 {
			t.Fatalf("Int(3, 8) = %d, out of range", v)
		}
	}

	before := g.State()
	if got := g.Int(5, 5); got != 5 {
		t.Errorf("Int(5, 5) = %d, want 5", got)
	}
	if g.State() != before {
		t.Error("empty range should not consume a roll")
	}
}

func TestRangeBounds(t *testing.T) {
	g := New(7)
	for i := 0; i < 10000; i++ {
		v := g.Range(-2.5, 2.5)
		if v < -2.5 || v >= 2.5 {
			t.Fatalf("Range(-2.5, 2.5) = %v, out of range", v)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		if g.Chance(0) {
			t.Fatal("Chance(0) succeeded")
		}
		if !g.Chance(1) {
			t.Fatal("Chance(1) failed")
		}
	}
}

func TestAdvanceSeed(t *testing.T) {
	tests := []struct {
		seed uint32
		want uint32
	}{
		{0, 1013904223},
		{42, 1083814273},
		{0xffffffff, 1012239698},
	}
	for _, tt := range tests {
		if got := AdvanceSeed(tt.seed); got != tt.want {
			t.Errorf("AdvanceSeed(%d) = %d, want %d", tt.seed, got, tt.want)
		}
	}
}

func TestFreshGeneratorReplaysSeed(t *testing.T) {
	seed := uint32(2024)
	first := New(seed)
	for i := 0; i < 10; i++ {
		first.Float()
	}
	// Rolling on one generator leaves the seed itself untouched, so a new
	// generator from the same seed starts the sequence over.
	if New(seed).Float() != New(seed).Float() {
		t.Error("fresh generators from one seed disagree")
	}
}
