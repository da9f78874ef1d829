package bytebuf

import (
	"errors"
	"fmt"
)

// Stop-bit varint: seven payload bits per byte, high bit set on every byte
// except the last. Negative values emit the groups of ^n with the
// continuation bit set throughout, terminated by a zero byte; the decoder
// spots the zero terminator after at least one group and complements back.

// placeholder replaces runes above 255 in the 8-bit passthrough encoding.
const placeholder = '?'

// ErrStopBitTooLong is returned when a stop-bit sequence does not terminate
// within the 64-bit range.
var ErrStopBitTooLong = errors.New("stop-bit sequence exceeds 64 bits")

// WriteStopBit appends n in stop-bit encoding at the write cursor.
func WriteStopBit(b Bytes, n int64) error {
	if n >= 0 {
		u := uint64(n)
		for u >= 0x80 {
			if err := b.WriteByte(byte(u) | 0x80); err != nil {
				return err
			}
			u >>= 7
		}
		return b.WriteByte(byte(u))
	}

	u := uint64(^n)
	for {
		if err := b.WriteByte(byte(u) | 0x80); err != nil {
			return err
		}
		u >>= 7
		if u == 0 {
			break
		}
	}
	return b.WriteByte(0)
}

// ReadStopBit consumes a stop-bit encoded value at the read cursor.
func ReadStopBit(b Bytes) (int64, error) {
	var v uint64
	var shift uint
	for {
		c, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		if c&0x80 == 0 {
			if c == 0 && shift > 0 {
				return ^int64(v), nil
			}
			if shift >= 64 {
				return 0, ErrStopBitTooLong
			}
			return int64(v | uint64(c)<<shift), nil
		}
		if shift >= 64 {
			return 0, ErrStopBitTooLong
		}
		v |= uint64(c&0x7F) << shift
		shift += 7
	}
}

// Write8BitString appends s in the 8-bit passthrough encoding: a stop-bit
// length prefix (in characters) followed by one byte per rune. Runes above
// 255 are replaced with '?'.
func Write8BitString(b Bytes, s string) error {
	runes := []rune(s)
	if err := WriteStopBit(b, int64(len(runes))); err != nil {
		return err
	}
	for _, r := range runes {
		if r > 0xFF {
			r = placeholder
		}
		if err := b.WriteByte(byte(r)); err != nil {
			return err
		}
	}
	return nil
}

// Read8BitString consumes an 8-bit passthrough string at the read cursor.
func Read8BitString(b Bytes) (string, error) {
	n, err := ReadStopBit(b)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("negative string length %d", n)
	}
	runes := make([]rune, n)
	for i := range runes {
		c, err := b.ReadByte()
		if err != nil {
			return "", err
		}
		runes[i] = rune(c)
	}
	return string(runes), nil
}

// WriteUTF8 appends s as a stop-bit byte-length prefix followed by its raw
// UTF-8 bytes.
func WriteUTF8(b Bytes, s string) error {
	if err := WriteStopBit(b, int64(len(s))); err != nil {
		return err
	}
	_, err := b.Write([]byte(s))
	return err
}

// ReadUTF8 consumes a length-prefixed UTF-8 string at the read cursor.
func ReadUTF8(b Bytes) (string, error) {
	n, err := ReadStopBit(b)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("negative string length %d", n)
	}
	if b.ReadRemaining() < n {
		return "", &ErrOutOfBounds{Offset: b.ReadPosition(), Length: n, Capacity: b.ReadLimit()}
	}
	p := make([]byte, n)
	if n > 0 {
		if _, err := b.Read(p); err != nil {
			return "", err
		}
	}
	return string(p), nil
}
