package testutil

import (
	"bytes"
	"testing"
)

func TestRNGReproducibility(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)

	if !bytes.Equal(a.Bytes(128), b.Bytes(128)) {
		t.Error("same seed should produce the same bytes")
	}

	a.Reset()
	c := NewRNG(7)
	if !bytes.Equal(a.Bytes(64), c.Bytes(64)) {
		t.Error("reset should replay the sequence")
	}

	if a.Seed() != 7 {
		t.Errorf("expected seed 7, got %d", a.Seed())
	}
}

func TestRNGInt64s(t *testing.T) {
	r := NewRNG(1)
	vals := r.Int64s(16)
	if len(vals) != 16 {
		t.Fatalf("expected 16 values, got %d", len(vals))
	}

	r.Reset()
	again := r.Int64s(16)
	for i := range vals {
		if vals[i] != again[i] {
			t.Fatalf("value %d differs after reset", i)
		}
	}
}

func TestPattern(t *testing.T) {
	p := Pattern(0, 32)
	if len(p) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(p))
	}

	// Shifted windows line up byte for byte.
	q := Pattern(8, 24)
	if !bytes.Equal(p[8:], q) {
		t.Error("pattern should depend only on absolute position")
	}

	if bytes.Equal(Pattern(0, 16), Pattern(1, 16)) {
		t.Error("different offsets should produce different patterns")
	}
}
