package bytebuf

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// HeapStore is a BytesStore over a GC-managed byte slice. It never exposes a
// raw address: the collector is free to move the backing array, so the
// unchecked view and the striped hash reject heap-backed stores at the type
// boundary rather than at access time.
//
// Primitive access uses native byte order, matching the native stores, so
// CopyTo across backing kinds preserves every value bit-for-bit.
type HeapStore struct {
	data []byte
	refs *RefCount
	opts *Options
}

var _ BytesStore = (*HeapStore)(nil)

// NewHeapStore wraps an existing byte slice. The store shares the slice; no
// copy is made. Releasing the last reservation only drops the reference.
func NewHeapStore(data []byte, optFns ...func(o *Options)) *HeapStore {
	opts := applyOptions(optFns)
	s := &HeapStore{data: data, opts: opts}
	s.refs = NewRefCount(func() error {
		s.data = nil
		return nil
	})
	return s
}

func (s *HeapStore) Reserve() error  { return s.refs.Reserve() }
func (s *HeapStore) Release() error  { return s.refs.Release() }
func (s *HeapStore) RefCount() int64 { return s.refs.Count() }
func (s *HeapStore) Capacity() int64 { return int64(len(s.data)) }

func (s *HeapStore) Inside(offset int64) bool {
	return offset >= 0 && offset < int64(len(s.data))
}

// Address always fails: heap memory is not address-stable.
func (s *HeapStore) Address(offset int64) (uintptr, error) {
	return 0, ErrUnsupportedAddressing
}

func (s *HeapStore) check(offset, length int64) error {
	if s.refs.Released() {
		return errReleased("heap store")
	}
	return checkRange(offset, length, int64(len(s.data)))
}

func (s *HeapStore) ReadByte(offset int64) (byte, error) {
	if err := s.check(offset, 1); err != nil {
		return 0, err
	}
	return s.data[offset], nil
}

func (s *HeapStore) ReadInt16(offset int64) (int16, error) {
	if err := s.check(offset, 2); err != nil {
		return 0, err
	}
	return *(*int16)(unsafe.Pointer(&s.data[offset])), nil
}

func (s *HeapStore) ReadInt32(offset int64) (int32, error) {
	if err := s.check(offset, 4); err != nil {
		return 0, err
	}
	return *(*int32)(unsafe.Pointer(&s.data[offset])), nil
}

func (s *HeapStore) ReadInt64(offset int64) (int64, error) {
	if err := s.check(offset, 8); err != nil {
		return 0, err
	}
	return *(*int64)(unsafe.Pointer(&s.data[offset])), nil
}

func (s *HeapStore) ReadFloat32(offset int64) (float32, error) {
	v, err := s.ReadInt32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (s *HeapStore) ReadFloat64(offset int64) (float64, error) {
	v, err := s.ReadInt64(offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (s *HeapStore) WriteByte(offset int64, v byte) error {
	if err := s.check(offset, 1); err != nil {
		return err
	}
	s.data[offset] = v
	return nil
}

func (s *HeapStore) WriteInt16(offset int64, v int16) error {
	if err := s.check(offset, 2); err != nil {
		return err
	}
	*(*int16)(unsafe.Pointer(&s.data[offset])) = v
	return nil
}

func (s *HeapStore) WriteInt32(offset int64, v int32) error {
	if err := s.check(offset, 4); err != nil {
		return err
	}
	*(*int32)(unsafe.Pointer(&s.data[offset])) = v
	return nil
}

func (s *HeapStore) WriteInt64(offset int64, v int64) error {
	if err := s.check(offset, 8); err != nil {
		return err
	}
	*(*int64)(unsafe.Pointer(&s.data[offset])) = v
	return nil
}

func (s *HeapStore) WriteFloat32(offset int64, v float32) error {
	return s.WriteInt32(offset, int32(math.Float32bits(v)))
}

func (s *HeapStore) WriteFloat64(offset int64, v float64) error {
	return s.WriteInt64(offset, int64(math.Float64bits(v)))
}

// Volatile and CAS access requires natural alignment of the offset relative
// to the slice start; the slice itself is word aligned by the allocator.

func (s *HeapStore) ReadVolatileInt32(offset int64) (int32, error) {
	if err := s.check(offset, 4); err != nil {
		return 0, err
	}
	return atomic.LoadInt32((*int32)(unsafe.Pointer(&s.data[offset]))), nil
}

func (s *HeapStore) ReadVolatileInt64(offset int64) (int64, error) {
	if err := s.check(offset, 8); err != nil {
		return 0, err
	}
	return atomic.LoadInt64((*int64)(unsafe.Pointer(&s.data[offset]))), nil
}

func (s *HeapStore) WriteOrderedInt32(offset int64, v int32) error {
	if err := s.check(offset, 4); err != nil {
		return err
	}
	atomic.StoreInt32((*int32)(unsafe.Pointer(&s.data[offset])), v)
	return nil
}

func (s *HeapStore) WriteOrderedInt64(offset int64, v int64) error {
	if err := s.check(offset, 8); err != nil {
		return err
	}
	atomic.StoreInt64((*int64)(unsafe.Pointer(&s.data[offset])), v)
	return nil
}

func (s *HeapStore) CompareAndSwapInt32(offset int64, old, new int32) (bool, error) {
	if err := s.check(offset, 4); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt32((*int32)(unsafe.Pointer(&s.data[offset])), old, new), nil
}

func (s *HeapStore) CompareAndSwapInt64(offset int64, old, new int64) (bool, error) {
	if err := s.check(offset, 8); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt64((*int64)(unsafe.Pointer(&s.data[offset])), old, new), nil
}

func (s *HeapStore) Read(offset int64, p []byte) (int, error) {
	if err := s.check(offset, int64(len(p))); err != nil {
		return 0, err
	}
	return copy(p, s.data[offset:]), nil
}

func (s *HeapStore) Write(offset int64, p []byte) error {
	if err := s.check(offset, int64(len(p))); err != nil {
		return err
	}
	copy(s.data[offset:], p)
	return nil
}

func (s *HeapStore) CopyTo(dst BytesStore) (int64, error) {
	if s.refs.Released() {
		return 0, errReleased("heap store")
	}
	n, err := copyStores(s, dst)
	if err == nil {
		s.opts.Metrics.RecordCopy(n)
	}
	return n, err
}
