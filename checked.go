package bytebuf

import (
	"io"
)

// CheckedBytes is the bounds-checked implementation of the Bytes contract.
// It works over any BytesStore: every offset is validated against the view
// window before the store is touched, and the store validates against its own
// capacity. This is the default and the right choice for unfamiliar call
// sites; Unchecked(true) trades the diagnostics for raw-pointer speed.
type CheckedBytes struct {
	cursor
}

var _ Bytes = (*CheckedBytes)(nil)

// AllocateFixed returns a checked, fixed-capacity view over a fresh native
// store. Writes past capacity fail with ErrCapacityExceeded.
func AllocateFixed(capacity int64, optFns ...func(o *Options)) (*CheckedBytes, error) {
	opts := applyOptions(optFns)
	store, err := newNativeStore(capacity, opts)
	if err != nil {
		return nil, err
	}
	return &CheckedBytes{cursor{
		store:      store,
		addr:       store.addr,
		writeLimit: capacity,
		maxLimit:   capacity,
		opts:       opts,
	}}, nil
}

// AllocateElastic returns a checked elastic view. A write past the current
// backing allocation triggers growth instead of failing. initialCapacity 0
// starts with a single page.
func AllocateElastic(initialCapacity int64, optFns ...func(o *Options)) (*CheckedBytes, error) {
	opts := applyOptions(optFns)
	if initialCapacity <= 0 {
		initialCapacity = 1 // rounded up to one page by the mapping layer
	}
	store, err := newNativeStore(initialCapacity, opts)
	if err != nil {
		return nil, err
	}
	return &CheckedBytes{cursor{
		store:      store,
		addr:       store.addr,
		writeLimit: MaxCapacity,
		maxLimit:   MaxCapacity,
		elastic:    true,
		opts:       opts,
	}}, nil
}

// WrapForRead wraps a byte slice for reading: the unread window spans the
// whole slice. The view is fixed and heap-backed (not addressable).
func WrapForRead(p []byte, optFns ...func(o *Options)) *CheckedBytes {
	opts := applyOptions(optFns)
	store := NewHeapStore(p, optFns...)
	return &CheckedBytes{cursor{
		store:      store,
		writePos:   int64(len(p)),
		writeLimit: int64(len(p)),
		maxLimit:   int64(len(p)),
		opts:       opts,
	}}
}

// WrapForWrite wraps a byte slice for writing from the start.
func WrapForWrite(p []byte, optFns ...func(o *Options)) *CheckedBytes {
	opts := applyOptions(optFns)
	store := NewHeapStore(p, optFns...)
	return &CheckedBytes{cursor{
		store:      store,
		writeLimit: int64(len(p)),
		maxLimit:   int64(len(p)),
		opts:       opts,
	}}
}

// ViewOf returns a checked fixed view over an existing store, reserving it.
func ViewOf(store BytesStore, optFns ...func(o *Options)) (*CheckedBytes, error) {
	opts := applyOptions(optFns)
	if err := store.Reserve(); err != nil {
		return nil, err
	}
	addr, err := store.Address(0)
	if err != nil {
		addr = 0
	}
	return &CheckedBytes{cursor{
		store:      store,
		addr:       addr,
		writeLimit: store.Capacity(),
		maxLimit:   store.Capacity(),
		opts:       opts,
	}}, nil
}

// Unchecked returns an unchecked view sharing this view's store when flag is
// true, and the view itself otherwise. The store must expose a raw address.
func (b *CheckedBytes) Unchecked(flag bool) (Bytes, error) {
	if !flag {
		return b, nil
	}
	if _, err := b.store.Address(0); err != nil {
		return nil, err
	}
	if err := b.store.Reserve(); err != nil {
		return nil, err
	}
	u := &UncheckedBytes{cursor: b.cursor}
	return u, nil
}

// PeekUnsignedByte returns the next unread byte, or -1 when nothing remains.
func (b *CheckedBytes) PeekUnsignedByte() int {
	if b.readPos >= b.writePos {
		return -1
	}
	v, err := b.store.ReadByte(b.readPos)
	if err != nil {
		return -1
	}
	return int(v)
}

func (b *CheckedBytes) ReadByte() (byte, error) {
	if err := b.readCheck(1); err != nil {
		return 0, err
	}
	v, err := b.store.ReadByte(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos++
	return v, nil
}

func (b *CheckedBytes) ReadInt16() (int16, error) {
	if err := b.readCheck(2); err != nil {
		return 0, err
	}
	v, err := b.store.ReadInt16(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos += 2
	return v, nil
}

func (b *CheckedBytes) ReadInt32() (int32, error) {
	if err := b.readCheck(4); err != nil {
		return 0, err
	}
	v, err := b.store.ReadInt32(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos += 4
	return v, nil
}

func (b *CheckedBytes) ReadInt64() (int64, error) {
	if err := b.readCheck(8); err != nil {
		return 0, err
	}
	v, err := b.store.ReadInt64(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos += 8
	return v, nil
}

func (b *CheckedBytes) ReadFloat32() (float32, error) {
	if err := b.readCheck(4); err != nil {
		return 0, err
	}
	v, err := b.store.ReadFloat32(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos += 4
	return v, nil
}

func (b *CheckedBytes) ReadFloat64() (float64, error) {
	if err := b.readCheck(8); err != nil {
		return 0, err
	}
	v, err := b.store.ReadFloat64(b.readPos)
	if err != nil {
		return 0, err
	}
	b.readPos += 8
	return v, nil
}

func (b *CheckedBytes) WriteByte(v byte) error {
	if err := b.writeCheck(b.writePos, 1); err != nil {
		return err
	}
	if err := b.store.WriteByte(b.writePos, v); err != nil {
		return err
	}
	b.writePos++
	return nil
}

func (b *CheckedBytes) WriteInt16(v int16) error {
	if err := b.writeCheck(b.writePos, 2); err != nil {
		return err
	}
	if err := b.store.WriteInt16(b.writePos, v); err != nil {
		return err
	}
	b.writePos += 2
	return nil
}

func (b *CheckedBytes) WriteInt32(v int32) error {
	if err := b.writeCheck(b.writePos, 4); err != nil {
		return err
	}
	if err := b.store.WriteInt32(b.writePos, v); err != nil {
		return err
	}
	b.writePos += 4
	return nil
}

func (b *CheckedBytes) WriteInt64(v int64) error {
	if err := b.writeCheck(b.writePos, 8); err != nil {
		return err
	}
	if err := b.store.WriteInt64(b.writePos, v); err != nil {
		return err
	}
	b.writePos += 8
	return nil
}

func (b *CheckedBytes) WriteFloat32(v float32) error {
	if err := b.writeCheck(b.writePos, 4); err != nil {
		return err
	}
	if err := b.store.WriteFloat32(b.writePos, v); err != nil {
		return err
	}
	b.writePos += 4
	return nil
}

func (b *CheckedBytes) WriteFloat64(v float64) error {
	if err := b.writeCheck(b.writePos, 8); err != nil {
		return err
	}
	if err := b.store.WriteFloat64(b.writePos, v); err != nil {
		return err
	}
	b.writePos += 8
	return nil
}

func (b *CheckedBytes) ReadByteAt(offset int64) (byte, error) {
	if err := b.readCheckAt(offset, 1); err != nil {
		return 0, err
	}
	return b.store.ReadByte(offset)
}

func (b *CheckedBytes) ReadInt16At(offset int64) (int16, error) {
	if err := b.readCheckAt(offset, 2); err != nil {
		return 0, err
	}
	return b.store.ReadInt16(offset)
}

func (b *CheckedBytes) ReadInt32At(offset int64) (int32, error) {
	if err := b.readCheckAt(offset, 4); err != nil {
		return 0, err
	}
	return b.store.ReadInt32(offset)
}

func (b *CheckedBytes) ReadInt64At(offset int64) (int64, error) {
	if err := b.readCheckAt(offset, 8); err != nil {
		return 0, err
	}
	return b.store.ReadInt64(offset)
}

func (b *CheckedBytes) ReadFloat32At(offset int64) (float32, error) {
	if err := b.readCheckAt(offset, 4); err != nil {
		return 0, err
	}
	return b.store.ReadFloat32(offset)
}

func (b *CheckedBytes) ReadFloat64At(offset int64) (float64, error) {
	if err := b.readCheckAt(offset, 8); err != nil {
		return 0, err
	}
	return b.store.ReadFloat64(offset)
}

func (b *CheckedBytes) WriteByteAt(offset int64, v byte) error {
	if err := b.writeCheck(offset, 1); err != nil {
		return err
	}
	return b.store.WriteByte(offset, v)
}

func (b *CheckedBytes) WriteInt16At(offset int64, v int16) error {
	if err := b.writeCheck(offset, 2); err != nil {
		return err
	}
	return b.store.WriteInt16(offset, v)
}

func (b *CheckedBytes) WriteInt32At(offset int64, v int32) error {
	if err := b.writeCheck(offset, 4); err != nil {
		return err
	}
	return b.store.WriteInt32(offset, v)
}

func (b *CheckedBytes) WriteInt64At(offset int64, v int64) error {
	if err := b.writeCheck(offset, 8); err != nil {
		return err
	}
	return b.store.WriteInt64(offset, v)
}

func (b *CheckedBytes) WriteFloat32At(offset int64, v float32) error {
	if err := b.writeCheck(offset, 4); err != nil {
		return err
	}
	return b.store.WriteFloat32(offset, v)
}

func (b *CheckedBytes) WriteFloat64At(offset int64, v float64) error {
	if err := b.writeCheck(offset, 8); err != nil {
		return err
	}
	return b.store.WriteFloat64(offset, v)
}

func (b *CheckedBytes) Read(p []byte) (int, error) {
	remaining := b.ReadRemaining()
	if remaining <= 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := int64(len(p))
	if n > remaining {
		n = remaining
	}
	read, err := b.store.Read(b.readPos, p[:n])
	if err != nil {
		return 0, err
	}
	b.readPos += int64(read)
	return read, nil
}

func (b *CheckedBytes) Write(p []byte) (int, error) {
	if err := b.writeCheck(b.writePos, int64(len(p))); err != nil {
		return 0, err
	}
	if err := b.store.Write(b.writePos, p); err != nil {
		return 0, err
	}
	b.writePos += int64(len(p))
	return len(p), nil
}

// WriteFrom appends length bytes of src starting at offset, through the
// store-mediated bulk path.
func (b *CheckedBytes) WriteFrom(src BytesStore, offset, length int64) error {
	if err := b.writeCheck(b.writePos, length); err != nil {
		return err
	}
	buf := make([]byte, 32*1024)
	var copied int64
	for copied < length {
		chunk := int64(len(buf))
		if length-copied < chunk {
			chunk = length - copied
		}
		if _, err := src.Read(offset+copied, buf[:chunk]); err != nil {
			return err
		}
		if err := b.store.Write(b.writePos+copied, buf[:chunk]); err != nil {
			return err
		}
		copied += chunk
	}
	b.writePos += length
	return nil
}
