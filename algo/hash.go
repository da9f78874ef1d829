package algo

import (
	"github.com/hupe1980/bytebuf/internal/mem"
)

// Lane seeds and per-lane odd multiplicative constants. Distribution is what
// matters here, not interoperability; the values are fixed so the hash stays
// stable across releases.
var k0 uint64 = 0x9E3779B97F4A7C15

const (
	k1 uint64 = 0xC2B2AE3D27D4EB4F
	k2 uint64 = 0x165667B19E3779F9
	k3 uint64 = 0x27D4EB2F165667C5

	m0 uint64 = 0xFF51AFD7ED558CCD
	m1 uint64 = 0xC4CEB9FE1A85EC53
	m2 uint64 = 0x9FB21C651E98DF25
	m3 uint64 = 0x2545F4914F6CDD1D

	fmix uint64 = 0xC6A4A7935BD1E995
)

// Addressable is the slice of the Bytes contract the hash needs: a read
// window over a store that exposes raw addresses. Heap-backed views fail
// AddressForRead and are rejected by StripedHash.
type Addressable interface {
	ReadPosition() int64
	ReadRemaining() int64
	AddressForRead(offset int64) (uintptr, error)
}

// StripedHash computes the 64-bit content hash of b's unread window. The
// cursors are not moved. Identical content yields the identical hash
// regardless of which address-exposing store kind backs it.
func StripedHash(b Addressable) (uint64, error) {
	remaining := b.ReadRemaining()
	if remaining == 0 {
		return 0, nil
	}
	addr, err := b.AddressForRead(b.ReadPosition())
	if err != nil {
		return 0, err
	}
	return hashMemory(addr, remaining), nil
}

// HashWord hashes a single 64-bit value through the 8-byte bucket, without
// touching memory.
func HashWord(l int64) uint64 {
	l0 := uint64(l)
	l0a := int32(l0 >> 32)

	h0 := 8*k0 + l0*m0
	h2 := -ext(l0a) * m2
	h3 := ext(l0a) * m3

	return agitate(h0) ^ agitate(h2) ^ agitate(h3)
}

func hashMemory(addr uintptr, remaining int64) uint64 {
	switch {
	case remaining < 8:
		return hash1to7(addr, remaining)
	case remaining == 8:
		return hash8(addr)
	case remaining <= 16:
		return hash9to16(addr, remaining)
	case remaining <= 32:
		return hash17to32(addr, remaining)
	case remaining&31 == 0:
		return hash32Multiple(addr, remaining)
	default:
		return hashAny(addr, remaining)
	}
}

// ext sign-extends a lane's high half into 64-bit wrap-around arithmetic.
func ext(v int32) uint64 {
	return uint64(int64(v))
}

// agitate is the per-lane avalanche finisher: one xorshift-multiply-xorshift
// round.
func agitate(v uint64) uint64 {
	v ^= v >> 47
	v *= fmix
	return v ^ v>>32
}

func hash1to7(addr uintptr, remaining int64) uint64 {
	h0 := uint64(remaining) * k0

	l0 := mem.ReadPartialWord(addr, int(remaining))
	l0a := int32(l0 >> 32)

	h0 += l0 * m0
	h2 := -ext(l0a) * m2
	h3 := ext(l0a) * m3

	return agitate(h0) ^ agitate(h2) ^ agitate(h3)
}

func hash8(addr uintptr) uint64 {
	h0 := 8 * k0

	l0 := uint64(mem.ReadInt64(addr))
	l0a := mem.ReadHighHalf(addr)

	h0 += l0 * m0
	h2 := -ext(l0a) * m2
	h3 := ext(l0a) * m3

	return agitate(h0) ^ agitate(h2) ^ agitate(h3)
}

func hash9to16(addr uintptr, remaining int64) uint64 {
	h0 := uint64(remaining) * k0
	left := int(remaining)

	l0 := mem.ReadPartialWord(addr, left)
	l0a := int32(l0 >> 32)
	l1 := mem.ReadPartialWord(addr+8, left-8)
	l1a := int32(l1 >> 32)

	h0 += (l0 + ext(l1a)) * m0
	h1 := l1 * m1
	h2 := -ext(l0a) * m2
	h3 := (ext(l0a) - ext(l1a)) * m3

	return agitate(h0) ^ agitate(h1) ^ agitate(h2) ^ agitate(h3)
}

func hash17to32(addr uintptr, remaining int64) uint64 {
	h0 := uint64(remaining) * k0
	left := int(remaining)

	l0 := uint64(mem.ReadInt64(addr))
	l0a := mem.ReadHighHalf(addr)
	l1 := uint64(mem.ReadInt64(addr + 8))
	l1a := mem.ReadHighHalf(addr + 8)
	l2 := mem.ReadPartialWord(addr+16, left-16)
	l2a := int32(l2 >> 32)
	l3 := mem.ReadPartialWord(addr+24, left-24)
	l3a := int32(l3 >> 32)

	h0 += (l0 + ext(l1a) - ext(l2a)) * m0
	h1 := (l1 + ext(l2a) - ext(l3a)) * m1
	h2 := (l2 + ext(l3a) - ext(l0a)) * m2
	h3 := (l3 + ext(l0a) - ext(l1a)) * m3

	return agitate(h0) ^ agitate(h1) ^ agitate(h2) ^ agitate(h3)
}

func hash32Multiple(addr uintptr, remaining int64) uint64 {
	h0 := uint64(remaining) * k0
	var h1, h2, h3 uint64

	for i := int64(0); i < remaining-31; i += 32 {
		if i > 0 {
			h0 *= k0
			h1 *= k1
			h2 *= k2
			h3 *= k3
		}
		p := addr + uintptr(i)
		l0 := uint64(mem.ReadInt64(p))
		l0a := mem.ReadHighHalf(p)
		l1 := uint64(mem.ReadInt64(p + 8))
		l1a := mem.ReadHighHalf(p + 8)
		l2 := uint64(mem.ReadInt64(p + 16))
		l2a := mem.ReadHighHalf(p + 16)
		l3 := uint64(mem.ReadInt64(p + 24))
		l3a := mem.ReadHighHalf(p + 24)

		h0 += (l0 + ext(l1a) - ext(l2a)) * m0
		h1 += (l1 + ext(l2a) - ext(l3a)) * m1
		h2 += (l2 + ext(l3a) - ext(l0a)) * m2
		h3 += (l3 + ext(l0a) - ext(l1a)) * m3
	}

	return agitate(h0) ^ agitate(h1) ^ agitate(h2) ^ agitate(h3)
}

func hashAny(addr uintptr, remaining int64) uint64 {
	h0 := uint64(remaining) * k0
	var h1, h2, h3 uint64

	var i int64
	for ; i < remaining-31; i += 32 {
		if i > 0 {
			h0 *= k0
			h1 *= k1
			h2 *= k2
			h3 *= k3
		}
		p := addr + uintptr(i)
		l0 := uint64(mem.ReadInt64(p))
		l0a := mem.ReadHighHalf(p)
		l1 := uint64(mem.ReadInt64(p + 8))
		l1a := mem.ReadHighHalf(p + 8)
		l2 := uint64(mem.ReadInt64(p + 16))
		l2a := mem.ReadHighHalf(p + 16)
		l3 := uint64(mem.ReadInt64(p + 24))
		l3a := mem.ReadHighHalf(p + 24)

		h0 += (l0 + ext(l1a) - ext(l2a)) * m0
		h1 += (l1 + ext(l2a) - ext(l3a)) * m1
		h2 += (l2 + ext(l3a) - ext(l0a)) * m2
		h3 += (l3 + ext(l0a) - ext(l1a)) * m3
	}

	if left := int(remaining - i); left > 0 {
		if i > 0 {
			h0 *= k0
			h1 *= k1
			h2 *= k2
			h3 *= k3
		}
		p := addr + uintptr(i)

		if left <= 16 {
			l0 := mem.ReadPartialWord(p, left)
			l0a := int32(l0 >> 32)
			l1 := mem.ReadPartialWord(p+8, left-8)
			l1a := int32(l1 >> 32)

			h0 += (l0 + ext(l1a)) * m0
			h1 += l1 * m1
			h2 += -ext(l0a) * m2
			h3 += (ext(l0a) - ext(l1a)) * m3
		} else {
			l0 := uint64(mem.ReadInt64(p))
			l0a := mem.ReadHighHalf(p)
			l1 := uint64(mem.ReadInt64(p + 8))
			l1a := mem.ReadHighHalf(p + 8)
			l2 := mem.ReadPartialWord(p+16, left-16)
			l2a := int32(l2 >> 32)
			l3 := mem.ReadPartialWord(p+24, left-24)
			l3a := int32(l3 >> 32)

			h0 += (l0 + ext(l1a) - ext(l2a)) * m0
			h1 += (l1 + ext(l2a) - ext(l3a)) * m1
			h2 += (l2 + ext(l3a) - ext(l0a)) * m2
			h3 += (l3 + ext(l0a) - ext(l1a)) * m3
		}
	}

	return agitate(h0) ^ agitate(h1) ^ agitate(h2) ^ agitate(h3)
}
