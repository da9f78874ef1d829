// Package algo provides content hashing over raw buffer memory.
//
// # Striped Hash
//
// StripedHash computes a 64-bit hash of a view's unread window directly
// through the store's raw address, skipping the cursor API entirely. Four
// accumulator lanes run in parallel over 32-byte strides; each lane mixes its
// own 64-bit word with the high halves of the neighbouring lanes, takes a
// per-lane odd multiplicative constant, and is finished with a single
// avalanche round before the lanes are XORed together.
//
// The dispatch is bucketed by remaining length so short inputs take
// branch-free specialized paths. Reading the high half of a word honours the
// platform byte order; the hash is self-consistent on a platform but is not
// defined to match across platforms of different endianness.
//
// The hash accelerates deduplication and equality checks; it is not
// cryptographic.
package algo
