package mem

import (
	"testing"
)

func addrOf(p []byte) uintptr {
	return AddressOf(p)
}

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	addr := addrOf(buf)

	WriteByte(addr, 0xAB)
	if got := ReadByte(addr); got != 0xAB {
		t.Errorf("expected 0xAB, got %#x", got)
	}

	WriteInt16(addr+2, -1234)
	if got := ReadInt16(addr + 2); got != -1234 {
		t.Errorf("expected -1234, got %d", got)
	}

	WriteInt32(addr+4, 1<<30)
	if got := ReadInt32(addr + 4); got != 1<<30 {
		t.Errorf("expected %d, got %d", 1<<30, got)
	}

	WriteInt64(addr+8, -1)
	if got := ReadInt64(addr + 8); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}

	WriteFloat32(addr+16, 1.5)
	if got := ReadFloat32(addr + 16); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}

	WriteFloat64(addr+24, -2.25)
	if got := ReadFloat64(addr + 24); got != -2.25 {
		t.Errorf("expected -2.25, got %v", got)
	}
}

func TestAtomics(t *testing.T) {
	buf := make([]byte, 16)
	addr := addrOf(buf)

	WriteOrderedInt64(addr, 41)
	if got := ReadVolatileInt64(addr); got != 41 {
		t.Errorf("expected 41, got %d", got)
	}
	if !CompareAndSwapInt64(addr, 41, 42) {
		t.Error("CAS should succeed")
	}
	if CompareAndSwapInt64(addr, 41, 43) {
		t.Error("CAS with stale old value should fail")
	}
	if got := ReadVolatileInt64(addr); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	WriteOrderedInt32(addr+8, 7)
	if got := ReadVolatileInt32(addr + 8); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if !CompareAndSwapInt32(addr+8, 7, 8) {
		t.Error("CAS should succeed")
	}
}

func TestCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)

	Copy(addrOf(dst), addrOf(src), 8)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, src[i], dst[i])
		}
	}

	// Zero and negative lengths are noops.
	Copy(addrOf(dst), addrOf(src), 0)
	Copy(addrOf(dst), addrOf(src), -1)
}

func TestSlice(t *testing.T) {
	buf := []byte{9, 8, 7}
	s := Slice(addrOf(buf), 3)
	if len(s) != 3 || s[0] != 9 || s[2] != 7 {
		t.Errorf("unexpected slice %v", s)
	}

	if s := Slice(addrOf(buf), 0); s != nil {
		t.Errorf("expected nil slice, got %v", s)
	}
}

func TestAddressOf(t *testing.T) {
	if got := AddressOf(nil); got != 0 {
		t.Errorf("expected 0 for empty slice, got %#x", got)
	}

	buf := make([]byte, 4)
	a := AddressOf(buf)
	if a == 0 {
		t.Error("expected non-zero address")
	}
	if b := AddressOf(buf[1:]); b != a+1 {
		t.Errorf("expected %#x, got %#x", a+1, b)
	}
}

func TestReadPartialWord(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	addr := addrOf(buf)

	tests := []struct {
		n    int
		want uint64
	}{
		{n: 0, want: 0},
		{n: -1, want: 0},
		{n: 1, want: 0x01},
		{n: 2, want: 0x0201},
		{n: 3, want: 0x030201},
		{n: 5, want: 0x0504030201},
		{n: 7, want: 0x07060504030201},
	}
	for _, tt := range tests {
		if got := ReadPartialWord(addr, tt.n); got != tt.want {
			t.Errorf("n=%d: expected %#x, got %#x", tt.n, tt.want, got)
		}
	}

	if !IsLittleEndian() {
		t.Skip("full-word assembly checks assume a little-endian platform")
	}
	if got := ReadPartialWord(addr, 4); got != 0x04030201 {
		t.Errorf("n=4: expected 0x04030201, got %#x", got)
	}
	if got := ReadPartialWord(addr, 8); got != 0x0807060504030201 {
		t.Errorf("n=8: expected full word, got %#x", got)
	}
}

func TestReadHighHalf(t *testing.T) {
	buf := make([]byte, 8)
	addr := addrOf(buf)

	WriteInt64(addr, 0x0102030405060708)
	if got := ReadHighHalf(addr); got != 0x01020304 {
		t.Errorf("expected 0x01020304, got %#x", got)
	}

	WriteInt64(addr, -1)
	if got := ReadHighHalf(addr); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestPageSize(t *testing.T) {
	ps := PageSize()
	if ps <= 0 || ps&(ps-1) != 0 {
		t.Errorf("page size %d is not a positive power of two", ps)
	}
}
