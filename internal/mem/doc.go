// Package mem provides raw-address memory primitives.
//
// # Raw Access
//
// All functions operate on uintptr addresses that refer to memory outside the
// Go heap (anonymous or file-backed mappings). Passing an address of
// GC-managed memory is a bug: the collector is free to move or reclaim it.
//
// Stores that cannot prove their memory is off-heap must not hand addresses
// to this package; they fail their Address call instead.
//
// # Memory Ordering
//
// Plain Read*/Write* functions carry no ordering guarantees. The Volatile,
// Ordered and CompareAndSwap variants map onto sync/atomic and are the
// building blocks for lock-free coordination between views sharing a store.
package mem
