package bytebuf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bytebuf"
	"github.com/hupe1980/bytebuf/testutil"
)

func TestOpenMappedFile(t *testing.T) {
	t.Run("creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")

		m, err := bytebuf.OpenMappedFile(path, 0)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		assert.Equal(t, path, m.Path())
		assert.Equal(t, int64(bytebuf.DefaultChunkSize), m.ChunkSize())

		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("chunk size is page rounded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")

		m, err := bytebuf.OpenMappedFile(path, 100)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		cs := m.ChunkSize()
		assert.GreaterOrEqual(t, cs, int64(100))
		assert.Equal(t, int64(0), cs%int64(os.Getpagesize()))
	})
}

func TestMappedFileChunks(t *testing.T) {
	const chunkSize = 64 * 1024

	t.Run("acquire extends the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		store, err := m.AcquireByteStore(2*m.ChunkSize() + 17)
		require.NoError(t, err)

		assert.Equal(t, 2, store.Index())
		assert.Equal(t, 2*m.ChunkSize(), store.FileOffset())
		assert.Equal(t, m.ChunkSize(), store.Capacity())

		size, err := m.Size()
		require.NoError(t, err)
		assert.Equal(t, 3*m.ChunkSize(), size)

		require.NoError(t, store.Release())
	})

	t.Run("reacquire shares the mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		a, err := m.AcquireByteStore(0)
		require.NoError(t, err)
		b, err := m.AcquireByteStore(17)
		require.NoError(t, err)

		// Same chunk, one mapping, two reservations.
		assert.Same(t, a, b)
		assert.Equal(t, int64(2), a.RefCount())

		require.NoError(t, a.Release())
		require.NoError(t, b.Release())
	})

	t.Run("negative position fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		_, err = m.AcquireByteStore(-1)
		assert.ErrorIs(t, err, bytebuf.ErrBoundsViolation)
	})

	t.Run("acquire after close fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		require.NoError(t, m.Close())

		_, err = m.AcquireByteStore(0)
		assert.ErrorIs(t, err, bytebuf.ErrLifecycleMisuse)
	})

	t.Run("chunks keep the file open past close", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)

		store, err := m.AcquireByteStore(0)
		require.NoError(t, err)

		require.NoError(t, m.Close())

		// The mapped chunk still works after Close.
		require.NoError(t, store.WriteInt64(0, 42))
		v, err := store.ReadInt64(0)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		require.NoError(t, store.Release())
	})
}

func TestMappedFileViews(t *testing.T) {
	const chunkSize = 64 * 1024

	t.Run("write view positions inside the chunk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		position := m.ChunkSize() + 100
		w, err := m.AcquireBytesForWrite(position)
		require.NoError(t, err)

		assert.Equal(t, int64(100), w.WritePosition())
		require.NoError(t, w.WriteInt64(7))
		require.NoError(t, w.Release())

		r, err := m.AcquireBytesForRead(position)
		require.NoError(t, err)
		v, err := r.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)
		require.NoError(t, r.Release())
	})

	t.Run("data survives close and reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")

		// Write patterns into chunks 0 and 2, skip chunk 1 entirely.
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		cs := m.ChunkSize()

		for _, index := range []int64{0, 2} {
			w, err := m.AcquireBytesForWrite(index * cs)
			require.NoError(t, err)
			_, err = w.Write(testutil.Pattern(index*cs, 256))
			require.NoError(t, err)
			require.NoError(t, w.Release())
		}
		require.NoError(t, m.Close())

		// Reopen and verify both patterns plus the zero-filled hole.
		m, err = bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		size, err := m.Size()
		require.NoError(t, err)
		assert.Equal(t, 3*cs, size)

		for _, index := range []int64{0, 2} {
			r, err := m.AcquireBytesForRead(index * cs)
			require.NoError(t, err)

			got := make([]byte, 256)
			_, err = r.Read(got)
			require.NoError(t, err)
			assert.Equal(t, testutil.Pattern(index*cs, 256), got)
			require.NoError(t, r.Release())
		}

		hole, err := m.AcquireBytesForRead(cs)
		require.NoError(t, err)
		for i := 0; i < 256; i++ {
			v, err := hole.ReadByte()
			require.NoError(t, err)
			require.Equal(t, byte(0), v)
		}
		require.NoError(t, hole.Release())
	})

	t.Run("sync flushes dirty chunks", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		w, err := m.AcquireBytesForWrite(0)
		require.NoError(t, err)
		defer w.Release() //nolint:errcheck
		require.NoError(t, w.WriteInt64(0x0102030405060708))

		require.NoError(t, m.Sync())

		// The write is visible through the file itself.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		got := make([]byte, 8)
		copy(got, raw[:8])

		b := bytebuf.WrapForRead(got)
		defer b.Release() //nolint:errcheck
		v, err := b.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(0x0102030405060708), v)
	})

	t.Run("write views work through the unchecked path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		m, err := bytebuf.OpenMappedFile(path, chunkSize)
		require.NoError(t, err)
		defer m.Close() //nolint:errcheck

		w, err := m.AcquireBytesForWrite(0)
		require.NoError(t, err)

		u, err := w.Unchecked(true)
		require.NoError(t, err)
		require.NoError(t, u.WriteInt64(99))
		require.NoError(t, u.Release())

		v, err := w.ReadInt64At(0)
		require.NoError(t, err)
		assert.Equal(t, int64(99), v)
		require.NoError(t, w.Release())
	})
}
