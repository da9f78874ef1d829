package bytebuf

import (
	"fmt"
	"io"

	"github.com/hupe1980/bytebuf/internal/mem"
)

// UncheckedBytes implements the Bytes contract over an address-exposing
// store with bounds checking disabled. For identical inputs it produces
// bit-identical results to CheckedBytes; the only difference is the missing
// diagnostics, so it is opt-in via Unchecked(true) and the wrong choice for
// unfamiliar call sites.
//
// Capacity must be ensured up front (EnsureCapacity); streaming writes do not
// grow. Build with the bytebuf_debug tag to re-enable the checks as panics.
type UncheckedBytes struct {
	cursor
}

var _ Bytes = (*UncheckedBytes)(nil)

// Unchecked returns the view itself for flag true, or a checked view sharing
// the store otherwise.
func (b *UncheckedBytes) Unchecked(flag bool) (Bytes, error) {
	if flag {
		return b, nil
	}
	if err := b.store.Reserve(); err != nil {
		return nil, err
	}
	return &CheckedBytes{cursor: b.cursor}, nil
}

func (b *UncheckedBytes) assertRead(n int64) {
	if !debugChecks {
		return
	}
	if b.readPos+n > b.writePos {
		panic(fmt.Sprintf("unchecked read of %d at %d past read limit %d", n, b.readPos, b.writePos))
	}
}

func (b *UncheckedBytes) assertWrite(off, n int64) {
	if !debugChecks {
		return
	}
	if off < b.start || off+n > b.store.Capacity() {
		panic(fmt.Sprintf("unchecked write of %d at %d past capacity %d", n, off, b.store.Capacity()))
	}
}

// PeekUnsignedByte returns the next unread byte, or -1 when nothing remains.
func (b *UncheckedBytes) PeekUnsignedByte() int {
	if b.readPos >= b.writePos {
		return -1
	}
	return int(mem.ReadByte(b.addr + uintptr(b.readPos)))
}

func (b *UncheckedBytes) ReadByte() (byte, error) {
	b.assertRead(1)
	v := mem.ReadByte(b.addr + uintptr(b.readPos))
	b.readPos++
	return v, nil
}

func (b *UncheckedBytes) ReadInt16() (int16, error) {
	b.assertRead(2)
	v := mem.ReadInt16(b.addr + uintptr(b.readPos))
	b.readPos += 2
	return v, nil
}

func (b *UncheckedBytes) ReadInt32() (int32, error) {
	b.assertRead(4)
	v := mem.ReadInt32(b.addr + uintptr(b.readPos))
	b.readPos += 4
	return v, nil
}

func (b *UncheckedBytes) ReadInt64() (int64, error) {
	b.assertRead(8)
	v := mem.ReadInt64(b.addr + uintptr(b.readPos))
	b.readPos += 8
	return v, nil
}

func (b *UncheckedBytes) ReadFloat32() (float32, error) {
	b.assertRead(4)
	v := mem.ReadFloat32(b.addr + uintptr(b.readPos))
	b.readPos += 4
	return v, nil
}

func (b *UncheckedBytes) ReadFloat64() (float64, error) {
	b.assertRead(8)
	v := mem.ReadFloat64(b.addr + uintptr(b.readPos))
	b.readPos += 8
	return v, nil
}

func (b *UncheckedBytes) WriteByte(v byte) error {
	b.assertWrite(b.writePos, 1)
	mem.WriteByte(b.addr+uintptr(b.writePos), v)
	b.writePos++
	return nil
}

func (b *UncheckedBytes) WriteInt16(v int16) error {
	b.assertWrite(b.writePos, 2)
	mem.WriteInt16(b.addr+uintptr(b.writePos), v)
	b.writePos += 2
	return nil
}

func (b *UncheckedBytes) WriteInt32(v int32) error {
	b.assertWrite(b.writePos, 4)
	mem.WriteInt32(b.addr+uintptr(b.writePos), v)
	b.writePos += 4
	return nil
}

func (b *UncheckedBytes) WriteInt64(v int64) error {
	b.assertWrite(b.writePos, 8)
	mem.WriteInt64(b.addr+uintptr(b.writePos), v)
	b.writePos += 8
	return nil
}

func (b *UncheckedBytes) WriteFloat32(v float32) error {
	b.assertWrite(b.writePos, 4)
	mem.WriteFloat32(b.addr+uintptr(b.writePos), v)
	b.writePos += 4
	return nil
}

func (b *UncheckedBytes) WriteFloat64(v float64) error {
	b.assertWrite(b.writePos, 8)
	mem.WriteFloat64(b.addr+uintptr(b.writePos), v)
	b.writePos += 8
	return nil
}

func (b *UncheckedBytes) ReadByteAt(offset int64) (byte, error) {
	b.assertWrite(offset, 1)
	return mem.ReadByte(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) ReadInt16At(offset int64) (int16, error) {
	b.assertWrite(offset, 2)
	return mem.ReadInt16(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) ReadInt32At(offset int64) (int32, error) {
	b.assertWrite(offset, 4)
	return mem.ReadInt32(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) ReadInt64At(offset int64) (int64, error) {
	b.assertWrite(offset, 8)
	return mem.ReadInt64(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) ReadFloat32At(offset int64) (float32, error) {
	b.assertWrite(offset, 4)
	return mem.ReadFloat32(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) ReadFloat64At(offset int64) (float64, error) {
	b.assertWrite(offset, 8)
	return mem.ReadFloat64(b.addr + uintptr(offset)), nil
}

func (b *UncheckedBytes) WriteByteAt(offset int64, v byte) error {
	b.assertWrite(offset, 1)
	mem.WriteByte(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) WriteInt16At(offset int64, v int16) error {
	b.assertWrite(offset, 2)
	mem.WriteInt16(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) WriteInt32At(offset int64, v int32) error {
	b.assertWrite(offset, 4)
	mem.WriteInt32(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) WriteInt64At(offset int64, v int64) error {
	b.assertWrite(offset, 8)
	mem.WriteInt64(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) WriteFloat32At(offset int64, v float32) error {
	b.assertWrite(offset, 4)
	mem.WriteFloat32(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) WriteFloat64At(offset int64, v float64) error {
	b.assertWrite(offset, 8)
	mem.WriteFloat64(b.addr+uintptr(offset), v)
	return nil
}

func (b *UncheckedBytes) Read(p []byte) (int, error) {
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
	copy(p[:n], mem.Slice(b.addr+uintptr(b.readPos), n))
	b.readPos += n
	return int(n), nil
}

func (b *UncheckedBytes) Write(p []byte) (int, error) {
	n := int64(len(p))
	b.assertWrite(b.writePos, n)
	copy(mem.Slice(b.addr+uintptr(b.writePos), n), p)
	b.writePos += n
	return len(p), nil
}

// WriteFrom appends length bytes of src starting at offset.
//
// When src exposes a raw address and the length amortizes the call overhead
// (>= 16 bytes) this is a single memmove; an exactly 8-byte transfer is one
// 64-bit load and store; anything else falls back to a byte loop.
func (b *UncheckedBytes) WriteFrom(src BytesStore, offset, length int64) error {
	if length <= 0 {
		return nil
	}
	b.assertWrite(b.writePos, length)
	dst := b.addr + uintptr(b.writePos)

	if srcAddr, err := src.Address(offset); err == nil && length >= 16 {
		mem.Copy(dst, srcAddr, length)
		b.writePos += length
		return nil
	}
	if length == 8 {
		v, err := src.ReadInt64(offset)
		if err != nil {
			return err
		}
		mem.WriteInt64(dst, v)
		b.writePos += 8
		return nil
	}
	for i := int64(0); i < length; i++ {
		v, err := src.ReadByte(offset + i)
		if err != nil {
			return err
		}
		mem.WriteByte(dst+uintptr(i), v)
	}
	b.writePos += length
	return nil
}
