package bytebuf

// Unsigned convenience wrappers. The wire encoding of an unsigned integer is
// the two's complement bit pattern of its signed twin, so these are pure
// casts around the Bytes primitives.

// ReadUint8 reads an unsigned byte at the read cursor.
func ReadUint8(b Bytes) (uint8, error) {
	v, err := b.ReadByte()
	return v, err
}

// ReadUint16 reads an unsigned 16-bit value at the read cursor.
func ReadUint16(b Bytes) (uint16, error) {
	v, err := b.ReadInt16()
	return uint16(v), err
}

// ReadUint32 reads an unsigned 32-bit value at the read cursor.
func ReadUint32(b Bytes) (uint32, error) {
	v, err := b.ReadInt32()
	return uint32(v), err
}

// ReadUint64 reads an unsigned 64-bit value at the read cursor.
func ReadUint64(b Bytes) (uint64, error) {
	v, err := b.ReadInt64()
	return uint64(v), err
}

// WriteUint8 writes an unsigned byte at the write cursor.
func WriteUint8(b Bytes, v uint8) error {
	return b.WriteByte(v)
}

// WriteUint16 writes an unsigned 16-bit value at the write cursor.
func WriteUint16(b Bytes, v uint16) error {
	return b.WriteInt16(int16(v))
}

// WriteUint32 writes an unsigned 32-bit value at the write cursor.
func WriteUint32(b Bytes, v uint32) error {
	return b.WriteInt32(int32(v))
}

// WriteUint64 writes an unsigned 64-bit value at the write cursor.
func WriteUint64(b Bytes, v uint64) error {
	return b.WriteInt64(int64(v))
}
