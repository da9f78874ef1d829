package bytebuf

import (
	"github.com/hupe1980/bytebuf/internal/mem"
	"github.com/hupe1980/bytebuf/internal/mmap"
)

// NativeStore is a BytesStore over an anonymous read-write mapping, outside
// the garbage collector's control. It exposes a raw address, so it supports
// the unchecked view, bulk raw copies and the striped content hash.
type NativeStore struct {
	data     []byte
	addr     uintptr
	capacity int64
	refs     *RefCount
	opts     *Options
}

var _ BytesStore = (*NativeStore)(nil)

// NewNativeStore allocates a native store of the given capacity. The mapping
// is page-granular; capacity is what callers asked for, the trailing page
// remainder stays unused. Memory is zero-filled by the OS.
func NewNativeStore(capacity int64, optFns ...func(o *Options)) (*NativeStore, error) {
	opts := applyOptions(optFns)
	return newNativeStore(capacity, opts)
}

func newNativeStore(capacity int64, opts *Options) (*NativeStore, error) {
	if capacity <= 0 {
		return nil, &ErrOutOfBounds{Offset: 0, Length: capacity, Capacity: 0}
	}
	if !opts.Controller.TryAcquireMemory(capacity) {
		return nil, ErrCapacityExceeded
	}

	sz, err := mapSize(capacity)
	if err != nil {
		opts.Controller.ReleaseMemory(capacity)
		return nil, err
	}
	data, err := mmap.MapAnon(sz)
	if err != nil {
		opts.Controller.ReleaseMemory(capacity)
		return nil, err
	}

	s := &NativeStore{
		data:     data,
		addr:     mem.AddressOf(data),
		capacity: capacity,
		opts:     opts,
	}
	s.refs = NewRefCount(s.free)

	opts.Metrics.RecordAlloc(capacity)
	return s, nil
}

// newWrappedNative wraps an existing off-heap mapping. onFree runs once, when
// the last reservation drops; it receives the mapping to dispose of.
func newWrappedNative(data []byte, opts *Options, onFree func(data []byte) error) *NativeStore {
	s := &NativeStore{
		data:     data,
		addr:     mem.AddressOf(data),
		capacity: int64(len(data)),
		opts:     opts,
	}
	s.refs = NewRefCount(func() error {
		d := s.data
		s.data = nil
		s.addr = 0
		return onFree(d)
	})
	return s
}

func (s *NativeStore) free() error {
	err := mmap.Unmap(s.data)
	s.data = nil
	s.addr = 0
	s.opts.Controller.ReleaseMemory(s.capacity)
	s.opts.Metrics.RecordRelease(s.capacity)
	return err
}

// Reserve adds a reservation.
func (s *NativeStore) Reserve() error { return s.refs.Reserve() }

// Release drops a reservation; the last one unmaps the memory.
func (s *NativeStore) Release() error { return s.refs.Release() }

// RefCount returns the current reservation count.
func (s *NativeStore) RefCount() int64 { return s.refs.Count() }

// Capacity returns the usable size in bytes.
func (s *NativeStore) Capacity() int64 { return s.capacity }

// Inside reports whether offset lies within [0, Capacity).
func (s *NativeStore) Inside(offset int64) bool {
	return offset >= 0 && offset < s.capacity
}

// Address returns the raw address of offset.
func (s *NativeStore) Address(offset int64) (uintptr, error) {
	if s.refs.Released() {
		return 0, errReleased("native store")
	}
	if err := checkRange(offset, 0, s.capacity); err != nil {
		return 0, err
	}
	return s.addr + uintptr(offset), nil
}

func (s *NativeStore) access(offset, length int64) (uintptr, error) {
	if s.refs.Released() {
		return 0, errReleased("native store")
	}
	if err := checkRange(offset, length, s.capacity); err != nil {
		return 0, err
	}
	return s.addr + uintptr(offset), nil
}

func (s *NativeStore) ReadByte(offset int64) (byte, error) {
	a, err := s.access(offset, 1)
	if err != nil {
		return 0, err
	}
	return mem.ReadByte(a), nil
}

func (s *NativeStore) ReadInt16(offset int64) (int16, error) {
	a, err := s.access(offset, 2)
	if err != nil {
		return 0, err
	}
	return mem.ReadInt16(a), nil
}

func (s *NativeStore) ReadInt32(offset int64) (int32, error) {
	a, err := s.access(offset, 4)
	if err != nil {
		return 0, err
	}
	return mem.ReadInt32(a), nil
}

func (s *NativeStore) ReadInt64(offset int64) (int64, error) {
	a, err := s.access(offset, 8)
	if err != nil {
		return 0, err
	}
	return mem.ReadInt64(a), nil
}

func (s *NativeStore) ReadFloat32(offset int64) (float32, error) {
	a, err := s.access(offset, 4)
	if err != nil {
		return 0, err
	}
	return mem.ReadFloat32(a), nil
}

func (s *NativeStore) ReadFloat64(offset int64) (float64, error) {
	a, err := s.access(offset, 8)
	if err != nil {
		return 0, err
	}
	return mem.ReadFloat64(a), nil
}

func (s *NativeStore) WriteByte(offset int64, v byte) error {
	a, err := s.access(offset, 1)
	if err != nil {
		return err
	}
	mem.WriteByte(a, v)
	return nil
}

func (s *NativeStore) WriteInt16(offset int64, v int16) error {
	a, err := s.access(offset, 2)
	if err != nil {
		return err
	}
	mem.WriteInt16(a, v)
	return nil
}

func (s *NativeStore) WriteInt32(offset int64, v int32) error {
	a, err := s.access(offset, 4)
	if err != nil {
		return err
	}
	mem.WriteInt32(a, v)
	return nil
}

func (s *NativeStore) WriteInt64(offset int64, v int64) error {
	a, err := s.access(offset, 8)
	if err != nil {
		return err
	}
	mem.WriteInt64(a, v)
	return nil
}

func (s *NativeStore) WriteFloat32(offset int64, v float32) error {
	a, err := s.access(offset, 4)
	if err != nil {
		return err
	}
	mem.WriteFloat32(a, v)
	return nil
}

func (s *NativeStore) WriteFloat64(offset int64, v float64) error {
	a, err := s.access(offset, 8)
	if err != nil {
		return err
	}
	mem.WriteFloat64(a, v)
	return nil
}

func (s *NativeStore) ReadVolatileInt32(offset int64) (int32, error) {
	a, err := s.access(offset, 4)
	if err != nil {
		return 0, err
	}
	return mem.ReadVolatileInt32(a), nil
}

func (s *NativeStore) ReadVolatileInt64(offset int64) (int64, error) {
	a, err := s.access(offset, 8)
	if err != nil {
		return 0, err
	}
	return mem.ReadVolatileInt64(a), nil
}

func (s *NativeStore) WriteOrderedInt32(offset int64, v int32) error {
	a, err := s.access(offset, 4)
	if err != nil {
		return err
	}
	mem.WriteOrderedInt32(a, v)
	return nil
}

func (s *NativeStore) WriteOrderedInt64(offset int64, v int64) error {
	a, err := s.access(offset, 8)
	if err != nil {
		return err
	}
	mem.WriteOrderedInt64(a, v)
	return nil
}

func (s *NativeStore) CompareAndSwapInt32(offset int64, old, new int32) (bool, error) {
	a, err := s.access(offset, 4)
	if err != nil {
		return false, err
	}
	return mem.CompareAndSwapInt32(a, old, new), nil
}

func (s *NativeStore) CompareAndSwapInt64(offset int64, old, new int64) (bool, error) {
	a, err := s.access(offset, 8)
	if err != nil {
		return false, err
	}
	return mem.CompareAndSwapInt64(a, old, new), nil
}

func (s *NativeStore) Read(offset int64, p []byte) (int, error) {
	a, err := s.access(offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, mem.Slice(a, int64(len(p))))
	return n, nil
}

func (s *NativeStore) Write(offset int64, p []byte) error {
	a, err := s.access(offset, int64(len(p)))
	if err != nil {
		return err
	}
	copy(mem.Slice(a, int64(len(p))), p)
	return nil
}

// CopyTo bulk-copies this store into dst, up to the smaller capacity.
func (s *NativeStore) CopyTo(dst BytesStore) (int64, error) {
	if s.refs.Released() {
		return 0, errReleased("native store")
	}
	n, err := copyStores(s, dst)
	if err == nil {
		s.opts.Metrics.RecordCopy(n)
	}
	return n, err
}

// mapSize rounds capacity up to the OS page size for the mapping layer.
func mapSize(capacity int64) (int, error) {
	ps := int64(mem.PageSize())
	sz := (capacity + ps - 1) &^ (ps - 1)
	if sz < capacity {
		return 0, ErrResizeInvalid
	}
	if int64(int(sz)) != sz {
		return 0, ErrResizeInvalid
	}
	return int(sz), nil
}
