package bytebuf

import (
	"fmt"
	"os"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/bytebuf/internal/conv"
	"github.com/hupe1980/bytebuf/internal/mem"
	"github.com/hupe1980/bytebuf/internal/mmap"
)

// DefaultChunkSize is the mapped-file chunk size used when none is given.
const DefaultChunkSize = 1024 * 1024

// MappedBytesStore is one chunk of a MappedFile: a fixed-size, page-aligned,
// independently reference-counted file mapping. It behaves exactly like a
// native store; the last release syncs (when written) and unmaps the chunk
// and drops the chunk's hold on the file.
type MappedBytesStore struct {
	*NativeStore
	file  *MappedFile
	index int
	start int64
}

// Index returns the chunk's position in the file's chunk sequence.
func (s *MappedBytesStore) Index() int { return s.index }

// FileOffset returns the chunk's byte offset within the file.
func (s *MappedBytesStore) FileOffset() int64 { return s.start }

// MappedFile divides a file into fixed-size chunks mapped on first access.
//
// Each chunk carries its own reservation count; repeated acquisition of a
// mapped chunk increments it instead of remapping. The file handle itself is
// reference counted and closes only when Close has been called and every
// chunk has been released. Acquiring past the current end transparently
// extends the file, the elastic-growth analogue for file-backed storage.
//
// Chunk acquisition is safe for concurrent use; the views handed out over
// chunks follow the usual single-writer rule.
type MappedFile struct {
	f         *os.File
	path      string
	chunkSize int64

	mu     sync.Mutex
	chunks []*MappedBytesStore
	dirty  *roaring.Bitmap

	refs *RefCount
	opts *Options
}

// OpenMappedFile opens (creating if absent) path and prepares chunked
// mapping. chunkSize is rounded up to the OS page size; 0 means
// DefaultChunkSize.
func OpenMappedFile(path string, chunkSize int64, optFns ...func(o *Options)) (*MappedFile, error) {
	opts := applyOptions(optFns)

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	ps := int64(mem.PageSize())
	chunkSize = (chunkSize + ps - 1) &^ (ps - 1)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	m := &MappedFile{
		f:         f,
		path:      path,
		chunkSize: chunkSize,
		dirty:     roaring.New(),
		opts:      opts,
	}
	m.refs = NewRefCount(func() error { return f.Close() })
	return m, nil
}

// Path returns the file path.
func (m *MappedFile) Path() string { return m.path }

// ChunkSize returns the page-rounded chunk size.
func (m *MappedFile) ChunkSize() int64 { return m.chunkSize }

// Size returns the file's current size in bytes.
func (m *MappedFile) Size() (int64, error) {
	fi, err := m.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// RefCount returns the file's reservation count: one for the open handle
// plus one per mapped chunk.
func (m *MappedFile) RefCount() int64 { return m.refs.Count() }

// Close drops the open handle's reservation. The file descriptor closes once
// the last chunk is released. Using the file after Close fails.
func (m *MappedFile) Close() error {
	return m.refs.Release()
}

// AcquireByteStore returns the chunk containing position, mapping it lazily.
// The chunk is reserved for the caller, who must Release it.
func (m *MappedFile) AcquireByteStore(position int64) (*MappedBytesStore, error) {
	if position < 0 {
		return nil, &ErrOutOfBounds{Offset: position, Length: 0, Capacity: 0}
	}
	index := position / m.chunkSize

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.refs.Released() {
		return nil, errReleased("mapped file")
	}

	for int64(len(m.chunks)) <= index {
		m.chunks = append(m.chunks, nil)
	}

	if existing := m.chunks[index]; existing != nil {
		if err := existing.Reserve(); err == nil {
			return existing, nil
		}
		// Lost the race against the final release; remap below.
		m.chunks[index] = nil
	}

	return m.mapChunk(index)
}

// mapChunk maps the chunk at index, extending the file when it ends short.
// Caller holds m.mu.
func (m *MappedFile) mapChunk(index int64) (*MappedBytesStore, error) {
	start := index * m.chunkSize
	end := start + m.chunkSize

	if err := m.refs.Reserve(); err != nil {
		return nil, err
	}

	size, err := m.Size()
	if err != nil {
		_ = m.refs.Release()
		return nil, err
	}
	if size < end {
		if err := m.f.Truncate(end); err != nil {
			_ = m.refs.Release()
			return nil, err
		}
	}

	if !m.opts.Controller.TryAcquireMemory(m.chunkSize) {
		_ = m.refs.Release()
		return nil, ErrCapacityExceeded
	}

	sz, err := conv.Int64ToInt(m.chunkSize)
	if err != nil {
		m.opts.Controller.ReleaseMemory(m.chunkSize)
		_ = m.refs.Release()
		return nil, fmt.Errorf("%w: %w", ErrResizeInvalid, err)
	}
	data, err := mmap.MapFile(m.f, start, sz)
	if err != nil {
		m.opts.Controller.ReleaseMemory(m.chunkSize)
		_ = m.refs.Release()
		return nil, err
	}

	store := &MappedBytesStore{file: m, start: start}
	store.index = int(index)
	store.NativeStore = newWrappedNative(data, m.opts, func(d []byte) error {
		return m.releaseChunk(store, d)
	})

	m.chunks[index] = store
	m.opts.Metrics.RecordChunkMap(m.chunkSize)
	m.opts.Logger.LogChunkMap(m.path, store.index, m.chunkSize)
	return store, nil
}

// releaseChunk is the chunk's release action: final sync when dirty, unmap,
// drop the chunk's hold on the file.
func (m *MappedFile) releaseChunk(store *MappedBytesStore, data []byte) error {
	idx, convErr := conv.Int64ToUint32(int64(store.index))

	m.mu.Lock()
	if m.chunks[store.index] == store {
		m.chunks[store.index] = nil
	}
	dirty := convErr == nil && m.dirty.Contains(idx)
	if dirty {
		m.dirty.Remove(idx)
	}
	m.mu.Unlock()

	var err error
	if dirty {
		err = mmap.Sync(data)
	}
	if e := mmap.Unmap(data); err == nil {
		err = e
	}

	m.opts.Controller.ReleaseMemory(m.chunkSize)
	m.opts.Metrics.RecordChunkUnmap(m.chunkSize)
	m.opts.Logger.LogChunkUnmap(m.path, store.index)

	if e := m.refs.Release(); err == nil {
		err = e
	}
	return err
}

// AcquireBytesForWrite returns a checked view over the chunk containing
// position, with the write cursor at position's offset within the chunk. The
// chunk is marked dirty and synced on its final release. Releasing the view
// releases the chunk.
func (m *MappedFile) AcquireBytesForWrite(position int64) (*CheckedBytes, error) {
	store, err := m.AcquireByteStore(position)
	if err != nil {
		return nil, err
	}
	m.markDirty(store.index)

	view := &CheckedBytes{cursor{
		store:      store,
		addr:       store.addr,
		writePos:   position - store.start,
		writeLimit: store.Capacity(),
		maxLimit:   store.Capacity(),
		opts:       m.opts,
	}}
	view.readPos = view.writePos
	return view, nil
}

// AcquireBytesForRead returns a checked view over the chunk containing
// position, with the whole chunk readable and the read cursor at position's
// offset. Releasing the view releases the chunk.
func (m *MappedFile) AcquireBytesForRead(position int64) (*CheckedBytes, error) {
	store, err := m.AcquireByteStore(position)
	if err != nil {
		return nil, err
	}

	view := &CheckedBytes{cursor{
		store:      store,
		addr:       store.addr,
		readPos:    position - store.start,
		writePos:   store.Capacity(),
		writeLimit: store.Capacity(),
		maxLimit:   store.Capacity(),
		opts:       m.opts,
	}}
	return view, nil
}

func (m *MappedFile) markDirty(index int) {
	idx, err := conv.Int64ToUint32(int64(index))
	if err != nil {
		return
	}
	m.mu.Lock()
	m.dirty.Add(idx)
	m.mu.Unlock()
}

// Sync flushes every dirty mapped chunk to the file. Dirty bits stay set;
// the final release of a chunk syncs it again.
func (m *MappedFile) Sync() error {
	m.mu.Lock()
	var targets []*MappedBytesStore
	for _, c := range m.chunks {
		if c == nil {
			continue
		}
		if idx, err := conv.Int64ToUint32(int64(c.index)); err == nil && m.dirty.Contains(idx) {
			targets = append(targets, c)
		}
	}
	m.mu.Unlock()

	for _, c := range targets {
		if err := mmap.Sync(c.data); err != nil {
			return err
		}
	}
	return nil
}

// Advise forwards an access-pattern hint for every currently mapped chunk.
func (m *MappedFile) Advise(pattern mmap.AccessPattern) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.chunks {
		if c == nil {
			continue
		}
		if err := mmap.Advise(c.data, pattern); err != nil {
			return err
		}
	}
	return nil
}
