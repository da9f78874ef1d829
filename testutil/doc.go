// Package testutil provides testing utilities for bytebuf.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source and helpers for
// generating reproducible byte payloads.
//
// # Random Payload Generation
//
//	rng := testutil.NewRNG(seed)
//	p := rng.Bytes(1024)        // random payload
//	rng.Fill(p)                 // refill in place
//
// # Deterministic Patterns
//
//	p := testutil.Pattern(0, 1024)  // position-derived bytes, no RNG
package testutil
