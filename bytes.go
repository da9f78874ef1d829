package bytebuf

import (
	"math"

	"github.com/hupe1980/bytebuf/internal/mem"
)

// MaxCapacity is the capacity reported by elastic views before growth is
// bounded by what the OS will actually map.
const MaxCapacity = math.MaxInt64 &^ 0xF

// Bytes is a read/write cursor view over exactly one BytesStore.
//
// Invariant, always:
//
//	Start() <= ReadPosition() <= WritePosition() <= WriteLimit() <= Capacity()
//
// ReadLimit() equals WritePosition(). A view is single-writer: its cursors
// are not safe for concurrent mutation. Only the reservation counters of the
// underlying stores are thread-safe.
//
// Streaming calls are cursor-relative and advance by the type's width; the
// *At variants are absolute and leave the cursors untouched. Unsigned values
// round-trip through the signed calls bit-for-bit (two's complement); the
// package-level ReadUint*/WriteUint* helpers wrap the casts.
type Bytes interface {
	Start() int64
	Capacity() int64
	RealCapacity() int64
	IsElastic() bool

	ReadPosition() int64
	WritePosition() int64
	ReadLimit() int64
	WriteLimit() int64
	ReadRemaining() int64
	WriteRemaining() int64

	SetReadPosition(p int64) error
	SetWritePosition(p int64) error
	SetWriteLimit(l int64) error
	ReadSkip(n int64) error
	WriteSkip(n int64) error
	Clear()

	// EnsureCapacity guarantees that offsets below end are writable without
	// further allocation: a no-op when already satisfied, growth on an
	// elastic view, ErrCapacityExceeded on a fixed one.
	EnsureCapacity(end int64) error

	// PeekUnsignedByte returns the next readable byte without advancing, or
	// -1 when nothing remains.
	PeekUnsignedByte() int

	ReadByte() (byte, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)

	WriteByte(v byte) error
	WriteInt16(v int16) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	WriteFloat32(v float32) error
	WriteFloat64(v float64) error

	ReadByteAt(offset int64) (byte, error)
	ReadInt16At(offset int64) (int16, error)
	ReadInt32At(offset int64) (int32, error)
	ReadInt64At(offset int64) (int64, error)
	ReadFloat32At(offset int64) (float32, error)
	ReadFloat64At(offset int64) (float64, error)

	WriteByteAt(offset int64, v byte) error
	WriteInt16At(offset int64, v int16) error
	WriteInt32At(offset int64, v int32) error
	WriteInt64At(offset int64, v int64) error
	WriteFloat32At(offset int64, v float32) error
	WriteFloat64At(offset int64, v float64) error

	// Read fills p from the unread window, advancing the read cursor.
	// Returns io.EOF when nothing remains.
	Read(p []byte) (int, error)
	// Write appends p at the write cursor, growing an elastic view.
	Write(p []byte) (int, error)
	// WriteFrom appends length bytes of src starting at offset.
	WriteFrom(src BytesStore, offset, length int64) error

	// BytesStore returns the current backing store. Elastic growth swaps it;
	// callers must not cache the result across writes.
	BytesStore() BytesStore
	// AddressForRead returns the raw address of an absolute offset, for bulk
	// and hash paths. Fails for non-addressable stores.
	AddressForRead(offset int64) (uintptr, error)

	// Unchecked returns a view with bounds checking disabled when flag is
	// true. The returned view reserves the same store but owns distinct
	// cursors, initialized from this view.
	Unchecked(flag bool) (Bytes, error)

	Reserve() error
	Release() error
	RefCount() int64
}

// cursor carries the position state and growth logic shared by the checked
// and unchecked views.
type cursor struct {
	store      BytesStore
	addr       uintptr // base address; 0 for non-addressable stores
	start      int64
	readPos    int64
	writePos   int64
	writeLimit int64
	maxLimit   int64 // Capacity(): MaxCapacity for elastic views
	elastic    bool
	opts       *Options
}

func (c *cursor) Start() int64        { return c.start }
func (c *cursor) Capacity() int64     { return c.maxLimit }
func (c *cursor) RealCapacity() int64 { return c.store.Capacity() }
func (c *cursor) IsElastic() bool     { return c.elastic }

func (c *cursor) ReadPosition() int64  { return c.readPos }
func (c *cursor) WritePosition() int64 { return c.writePos }
func (c *cursor) ReadLimit() int64     { return c.writePos }
func (c *cursor) WriteLimit() int64    { return c.writeLimit }

func (c *cursor) ReadRemaining() int64  { return c.writePos - c.readPos }
func (c *cursor) WriteRemaining() int64 { return c.writeLimit - c.writePos }

func (c *cursor) SetReadPosition(p int64) error {
	if p < c.start || p > c.writePos {
		return &ErrOutOfBounds{Offset: p, Length: 0, Capacity: c.writePos}
	}
	c.readPos = p
	return nil
}

func (c *cursor) SetWritePosition(p int64) error {
	if p < c.readPos || p > c.writeLimit {
		return &ErrOutOfBounds{Offset: p, Length: 0, Capacity: c.writeLimit}
	}
	c.writePos = p
	return nil
}

func (c *cursor) SetWriteLimit(l int64) error {
	if l < c.writePos || l > c.maxLimit {
		return &ErrOutOfBounds{Offset: l, Length: 0, Capacity: c.maxLimit}
	}
	c.writeLimit = l
	return nil
}

func (c *cursor) ReadSkip(n int64) error {
	p := c.readPos + n
	if p < c.start || p > c.writePos {
		return &ErrOutOfBounds{Offset: p, Length: 0, Capacity: c.writePos}
	}
	c.readPos = p
	return nil
}

func (c *cursor) WriteSkip(n int64) error {
	p := c.writePos + n
	if p < c.readPos || p > c.writeLimit {
		return &ErrOutOfBounds{Offset: p, Length: 0, Capacity: c.writeLimit}
	}
	c.writePos = p
	return nil
}

// Clear resets the cursors to start and the write limit to capacity.
func (c *cursor) Clear() {
	c.readPos = c.start
	c.writePos = c.start
	c.writeLimit = c.maxLimit
}

func (c *cursor) BytesStore() BytesStore { return c.store }

func (c *cursor) AddressForRead(offset int64) (uintptr, error) {
	return c.store.Address(offset)
}

func (c *cursor) Reserve() error  { return c.store.Reserve() }
func (c *cursor) Release() error  { return c.store.Release() }
func (c *cursor) RefCount() int64 { return c.store.RefCount() }

func (c *cursor) EnsureCapacity(end int64) error {
	if end < 0 {
		return ErrResizeInvalid
	}
	if end <= c.store.Capacity() {
		return nil
	}
	return c.grow(end)
}

// grow reallocates the backing store so that offsets below end are writable,
// copies the live bytes, releases the old store and swaps in the new one.
// The swap is invisible to callers: no state of the view changes besides the
// store reference and cached address.
func (c *cursor) grow(end int64) error {
	if !c.elastic {
		return &ErrOverflow{Offset: c.writePos, Length: end - c.writePos, Limit: c.store.Capacity()}
	}
	if end < 0 {
		return ErrResizeInvalid
	}

	old := c.store
	oldCap := old.Capacity()

	// Grow by 50%, rounded up to the next page boundary.
	target := oldCap + oldCap/2
	if end > target {
		target = end
	}
	ps := int64(mem.PageSize())
	size := (target + ps) &^ (ps - 1)
	if size < end {
		return ErrResizeInvalid
	}

	store, err := newNativeStore(size, c.opts)
	if err != nil {
		return err
	}
	if _, err := old.CopyTo(store); err != nil {
		_ = store.Release()
		return err
	}
	if err := old.Release(); err != nil {
		_ = store.Release()
		return err
	}

	c.store = store
	c.addr = store.addr
	c.opts.Metrics.RecordGrow(oldCap, size)
	c.opts.Logger.LogGrow(oldCap, size)
	return nil
}

// readCheck validates a cursor-relative read of n bytes.
func (c *cursor) readCheck(n int64) error {
	if n < 0 || c.readPos+n > c.writePos {
		return &ErrOutOfBounds{Offset: c.readPos, Length: n, Capacity: c.writePos}
	}
	return nil
}

// writeCheck validates a write of n bytes at off and ensures backing
// capacity, growing an elastic view on demand.
func (c *cursor) writeCheck(off, n int64) error {
	if off < c.start || n < 0 {
		return &ErrOutOfBounds{Offset: off, Length: n, Capacity: c.writeLimit}
	}
	end := off + n
	if end < 0 {
		return ErrResizeInvalid
	}
	if end > c.writeLimit {
		return &ErrOverflow{Offset: off, Length: n, Limit: c.writeLimit}
	}
	if end > c.store.Capacity() {
		return c.grow(end)
	}
	return nil
}

// readCheckAt validates an absolute read of n bytes within [start, writeLimit].
func (c *cursor) readCheckAt(off, n int64) error {
	if off < c.start || n < 0 || off+n > c.writeLimit {
		return &ErrOutOfBounds{Offset: off, Length: n, Capacity: c.writeLimit}
	}
	return nil
}
