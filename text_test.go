package bytebuf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bytebuf"
)

func TestStopBit(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		values := []int64{
			0, 1, 2, 127, 128, 129, 300, 16383, 16384,
			math.MaxInt32, math.MaxInt64,
			-1, -2, -127, -128, -129, -300,
			math.MinInt32, math.MinInt64,
		}

		b, err := bytebuf.AllocateElastic(64)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		for _, v := range values {
			require.NoError(t, bytebuf.WriteStopBit(b, v))
		}
		for _, v := range values {
			got, err := bytebuf.ReadStopBit(b)
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
		assert.Equal(t, int64(0), b.ReadRemaining())
	})

	t.Run("small values take one byte", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(16)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.WriteStopBit(b, 127))
		assert.Equal(t, int64(1), b.WritePosition())

		require.NoError(t, bytebuf.WriteStopBit(b, 128))
		assert.Equal(t, int64(3), b.WritePosition()) // two more bytes
	})

	t.Run("negative encoding terminates with a zero byte", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(16)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.WriteStopBit(b, -1))

		first, err := b.ReadByteAt(0)
		require.NoError(t, err)
		assert.Equal(t, byte(0x80), first)

		second, err := b.ReadByteAt(1)
		require.NoError(t, err)
		assert.Equal(t, byte(0x00), second)
	})

	t.Run("truncated input fails", func(t *testing.T) {
		b := bytebuf.WrapForRead([]byte{0x80, 0x80}) // continuation with no terminator
		defer b.Release()                            //nolint:errcheck

		_, err := bytebuf.ReadStopBit(b)
		assert.ErrorIs(t, err, bytebuf.ErrBoundsViolation)
	})
}

func Test8BitString(t *testing.T) {
	t.Run("latin round trip", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(64)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.Write8BitString(b, "héllo, wörld"))

		got, err := bytebuf.Read8BitString(b)
		require.NoError(t, err)
		assert.Equal(t, "héllo, wörld", got)
	})

	t.Run("runes above 255 become placeholders", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(64)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.Write8BitString(b, "a€b")) // euro sign

		got, err := bytebuf.Read8BitString(b)
		require.NoError(t, err)
		assert.Equal(t, "a?b", got)
	})

	t.Run("empty string", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(16)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.Write8BitString(b, ""))
		assert.Equal(t, int64(1), b.WritePosition()) // just the length prefix

		got, err := bytebuf.Read8BitString(b)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})
}

func TestUTF8String(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(128)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		for _, s := range []string{"", "plain", "héllo € 世界"} {
			require.NoError(t, bytebuf.WriteUTF8(b, s))
		}
		for _, want := range []string{"", "plain", "héllo € 世界"} {
			got, err := bytebuf.ReadUTF8(b)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("length prefix exceeding the window fails", func(t *testing.T) {
		b, err := bytebuf.AllocateFixed(16)
		require.NoError(t, err)
		defer b.Release() //nolint:errcheck

		require.NoError(t, bytebuf.WriteStopBit(b, 100)) // claims 100 bytes
		require.NoError(t, b.WriteByte('x'))

		_, err = bytebuf.ReadUTF8(b)
		assert.ErrorIs(t, err, bytebuf.ErrBoundsViolation)
	})
}

func TestHexDump(t *testing.T) {
	t.Run("renders the unread window", func(t *testing.T) {
		b := bytebuf.WrapForRead([]byte{0x00, 0x01, 0xAB, 0xFF})
		defer b.Release() //nolint:errcheck

		s, err := bytebuf.HexDump(b, -1)
		require.NoError(t, err)
		assert.Equal(t, "00 01 ab ff", s)

		// Cursors untouched.
		assert.Equal(t, int64(4), b.ReadRemaining())
	})

	t.Run("truncates long windows", func(t *testing.T) {
		b := bytebuf.WrapForRead([]byte{1, 2, 3, 4, 5})
		defer b.Release() //nolint:errcheck

		s, err := bytebuf.HexDump(b, 2)
		require.NoError(t, err)
		assert.Equal(t, "01 02 ... truncated", s)
	})

	t.Run("empty window", func(t *testing.T) {
		b := bytebuf.WrapForRead(nil)
		defer b.Release() //nolint:errcheck

		s, err := bytebuf.HexDump(b, -1)
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("starts at the read position", func(t *testing.T) {
		b := bytebuf.WrapForRead([]byte{0xAA, 0xBB, 0xCC})
		defer b.Release() //nolint:errcheck

		_, err := b.ReadByte()
		require.NoError(t, err)

		s, err := bytebuf.HexDump(b, -1)
		require.NoError(t, err)
		assert.Equal(t, "bb cc", s)
	})
}

func TestContentEqual(t *testing.T) {
	t.Run("equal across backing kinds", func(t *testing.T) {
		payload := []byte("the quick brown fox jumps over the lazy dog")

		heap := bytebuf.WrapForRead(payload)
		defer heap.Release() //nolint:errcheck

		native, err := bytebuf.AllocateFixed(int64(len(payload)))
		require.NoError(t, err)
		defer native.Release() //nolint:errcheck
		_, err = native.Write(payload)
		require.NoError(t, err)

		equal, err := bytebuf.ContentEqual(heap, native)
		require.NoError(t, err)
		assert.True(t, equal)

		// Cursors untouched.
		assert.Equal(t, int64(len(payload)), heap.ReadRemaining())
		assert.Equal(t, int64(len(payload)), native.ReadRemaining())
	})

	t.Run("different lengths", func(t *testing.T) {
		a := bytebuf.WrapForRead([]byte{1, 2, 3})
		defer a.Release() //nolint:errcheck
		b := bytebuf.WrapForRead([]byte{1, 2})
		defer b.Release() //nolint:errcheck

		equal, err := bytebuf.ContentEqual(a, b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("difference in the tail", func(t *testing.T) {
		a := bytebuf.WrapForRead([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
		defer a.Release() //nolint:errcheck
		b := bytebuf.WrapForRead([]byte{1, 2, 3, 4, 5, 6, 7, 8, 0})
		defer b.Release() //nolint:errcheck

		equal, err := bytebuf.ContentEqual(a, b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("empty windows are equal", func(t *testing.T) {
		a := bytebuf.WrapForRead(nil)
		defer a.Release() //nolint:errcheck
		b := bytebuf.WrapForRead(nil)
		defer b.Release() //nolint:errcheck

		equal, err := bytebuf.ContentEqual(a, b)
		require.NoError(t, err)
		assert.True(t, equal)
	})
}
