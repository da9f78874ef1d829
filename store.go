package bytebuf

import "github.com/hupe1980/bytebuf/internal/mem"

// BytesStore is an immutable-address, fixed-size memory region exposing
// offset-addressed primitive access. Offsets are absolute, never
// cursor-relative. A store is shared by reservation: Reserve/Release pair up,
// and the memory is returned exactly once, when the count reaches zero.
//
// The plain Read*/Write* calls carry no ordering guarantees. The Volatile,
// Ordered and CompareAndSwap variants establish acquire/release/CAS semantics
// respectively; callers build lock-free coordination on top of these, so an
// implementation must not weaken them to plain accesses.
type BytesStore interface {
	// Reserve adds a reservation. Fails on a released store.
	Reserve() error
	// Release drops a reservation; the last one frees the memory.
	Release() error
	// RefCount returns the current reservation count.
	RefCount() int64

	// Capacity returns the usable size of the region in bytes.
	Capacity() int64
	// Inside reports whether offset lies within [0, Capacity).
	Inside(offset int64) bool
	// Address returns the raw address of offset for bulk and hash paths.
	// Stores backed by GC-managed memory fail with ErrUnsupportedAddressing.
	Address(offset int64) (uintptr, error)

	ReadByte(offset int64) (byte, error)
	ReadInt16(offset int64) (int16, error)
	ReadInt32(offset int64) (int32, error)
	ReadInt64(offset int64) (int64, error)
	ReadFloat32(offset int64) (float32, error)
	ReadFloat64(offset int64) (float64, error)

	WriteByte(offset int64, v byte) error
	WriteInt16(offset int64, v int16) error
	WriteInt32(offset int64, v int32) error
	WriteInt64(offset int64, v int64) error
	WriteFloat32(offset int64, v float32) error
	WriteFloat64(offset int64, v float64) error

	ReadVolatileInt32(offset int64) (int32, error)
	ReadVolatileInt64(offset int64) (int64, error)
	WriteOrderedInt32(offset int64, v int32) error
	WriteOrderedInt64(offset int64, v int64) error
	CompareAndSwapInt32(offset int64, old, new int32) (bool, error)
	CompareAndSwapInt64(offset int64, old, new int64) (bool, error)

	// Read copies bytes starting at offset into p, returning the count read.
	Read(offset int64, p []byte) (int, error)
	// Write copies p into the store starting at offset.
	Write(offset int64, p []byte) error
	// CopyTo bulk-copies this store's content into dst, up to the smaller
	// capacity, and returns the number of bytes copied. Backing kinds may
	// differ.
	CopyTo(dst BytesStore) (int64, error)
}

func checkRange(offset, length, capacity int64) error {
	if offset < 0 || length < 0 || offset+length > capacity {
		return &ErrOutOfBounds{Offset: offset, Length: length, Capacity: capacity}
	}
	return nil
}

// copyStores is the generic bulk copy between stores of any backing kind.
// Address-exposing pairs take the raw memmove path.
func copyStores(src, dst BytesStore) (int64, error) {
	n := src.Capacity()
	if c := dst.Capacity(); c < n {
		n = c
	}
	if n == 0 {
		return 0, nil
	}

	srcAddr, srcErr := src.Address(0)
	dstAddr, dstErr := dst.Address(0)
	if srcErr == nil && dstErr == nil {
		mem.Copy(dstAddr, srcAddr, n)
		return n, nil
	}

	buf := make([]byte, 64*1024)
	var copied int64
	for copied < n {
		chunk := int64(len(buf))
		if n-copied < chunk {
			chunk = n - copied
		}
		if _, err := src.Read(copied, buf[:chunk]); err != nil {
			return copied, err
		}
		if err := dst.Write(copied, buf[:chunk]); err != nil {
			return copied, err
		}
		copied += chunk
	}
	return copied, nil
}
