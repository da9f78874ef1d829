package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63 returns a non-negative pseudo-random int64.
func (r *RNG) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63()
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Fill fills dst with pseudo-random bytes.
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Read(dst) //nolint:errcheck // never fails
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	p := make([]byte, n)
	r.Fill(p)
	return p
}

// Int64s returns n pseudo-random int64 values.
func (r *RNG) Int64s(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Uint64())
	}
	return out
}

// Pattern returns length bytes where byte i equals a cheap mix of
// offset+i. Payloads are reproducible without carrying an RNG around, and a
// misplaced read shows up as a value from the wrong position.
func Pattern(offset int64, length int) []byte {
	p := make([]byte, length)
	FillPattern(p, offset)
	return p
}

// FillPattern fills dst with the position-derived pattern starting at offset.
func FillPattern(dst []byte, offset int64) {
	for i := range dst {
		pos := offset + int64(i)
		dst[i] = byte(pos*31 + pos>>8)
	}
}
