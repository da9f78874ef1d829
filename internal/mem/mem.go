package mem

import (
	"math"
	"os"
	"sync/atomic"
	"unsafe"
)

var pageSize = os.Getpagesize()

// PageSize returns the OS page size in bytes. It is the allocation and
// mapping granularity for native stores and mapped-file chunks.
func PageSize() int {
	return pageSize
}

// littleEndian reports the byte order of the platform, probed once at init.
var littleEndian = func() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// IsLittleEndian reports whether the platform is little-endian.
func IsLittleEndian() bool {
	return littleEndian
}

// HighHalfOffset is the byte offset of the most significant 32 bits within a
// 64-bit word in memory: 4 on little-endian platforms, 0 on big-endian.
var HighHalfOffset = func() uintptr {
	if littleEndian {
		return 4
	}
	return 0
}()

// ReadByte reads one byte at addr.
func ReadByte(addr uintptr) byte {
	return *(*byte)(unsafe.Pointer(addr))
}

// WriteByte writes one byte at addr.
func WriteByte(addr uintptr, v byte) {
	*(*byte)(unsafe.Pointer(addr)) = v
}

// ReadInt16 reads a native-endian int16 at addr.
func ReadInt16(addr uintptr) int16 {
	return *(*int16)(unsafe.Pointer(addr))
}

// WriteInt16 writes a native-endian int16 at addr.
func WriteInt16(addr uintptr, v int16) {
	*(*int16)(unsafe.Pointer(addr)) = v
}

// ReadInt32 reads a native-endian int32 at addr.
func ReadInt32(addr uintptr) int32 {
	return *(*int32)(unsafe.Pointer(addr))
}

// WriteInt32 writes a native-endian int32 at addr.
func WriteInt32(addr uintptr, v int32) {
	*(*int32)(unsafe.Pointer(addr)) = v
}

// ReadInt64 reads a native-endian int64 at addr.
func ReadInt64(addr uintptr) int64 {
	return *(*int64)(unsafe.Pointer(addr))
}

// WriteInt64 writes a native-endian int64 at addr.
func WriteInt64(addr uintptr, v int64) {
	*(*int64)(unsafe.Pointer(addr)) = v
}

// ReadFloat32 reads an IEEE binary32 at addr.
func ReadFloat32(addr uintptr) float32 {
	return math.Float32frombits(*(*uint32)(unsafe.Pointer(addr)))
}

// WriteFloat32 writes an IEEE binary32 at addr.
func WriteFloat32(addr uintptr, v float32) {
	*(*uint32)(unsafe.Pointer(addr)) = math.Float32bits(v)
}

// ReadFloat64 reads an IEEE binary64 at addr.
func ReadFloat64(addr uintptr) float64 {
	return math.Float64frombits(*(*uint64)(unsafe.Pointer(addr)))
}

// WriteFloat64 writes an IEEE binary64 at addr.
func WriteFloat64(addr uintptr, v float64) {
	*(*uint64)(unsafe.Pointer(addr)) = math.Float64bits(v)
}

// ReadVolatileInt32 reads an int32 at addr with acquire semantics.
func ReadVolatileInt32(addr uintptr) int32 {
	return atomic.LoadInt32((*int32)(unsafe.Pointer(addr)))
}

// ReadVolatileInt64 reads an int64 at addr with acquire semantics.
// addr must be 8-byte aligned.
func ReadVolatileInt64(addr uintptr) int64 {
	return atomic.LoadInt64((*int64)(unsafe.Pointer(addr)))
}

// WriteOrderedInt32 writes an int32 at addr with release semantics.
func WriteOrderedInt32(addr uintptr, v int32) {
	atomic.StoreInt32((*int32)(unsafe.Pointer(addr)), v)
}

// WriteOrderedInt64 writes an int64 at addr with release semantics.
// addr must be 8-byte aligned.
func WriteOrderedInt64(addr uintptr, v int64) {
	atomic.StoreInt64((*int64)(unsafe.Pointer(addr)), v)
}

// CompareAndSwapInt32 atomically swaps the int32 at addr if it equals old.
func CompareAndSwapInt32(addr uintptr, old, new int32) bool {
	return atomic.CompareAndSwapInt32((*int32)(unsafe.Pointer(addr)), old, new)
}

// CompareAndSwapInt64 atomically swaps the int64 at addr if it equals old.
// addr must be 8-byte aligned.
func CompareAndSwapInt64(addr uintptr, old, new int64) bool {
	return atomic.CompareAndSwapInt64((*int64)(unsafe.Pointer(addr)), old, new)
}

// Copy copies n bytes from src to dst. The ranges may overlap.
func Copy(dst, src uintptr, n int64) {
	if n <= 0 {
		return
	}
	d := unsafe.Slice((*byte)(unsafe.Pointer(dst)), n)
	s := unsafe.Slice((*byte)(unsafe.Pointer(src)), n)
	copy(d, s)
}

// Slice aliases n bytes at addr as a []byte. The slice is valid only while
// the underlying mapping is alive.
func Slice(addr uintptr, n int64) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// AddressOf returns the address of the first byte of data. data must be
// off-heap mapped memory; an empty slice yields 0.
func AddressOf(data []byte) uintptr {
	if len(data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&data[0]))
}

// ReadPartialWord reads up to 8 bytes at addr, assembling them into a uint64
// low-byte first. n >= 8 reads a full word; n == 4 a single 32-bit load; any
// other n <= 0 yields 0. The upper bytes of a short read are zero.
func ReadPartialWord(addr uintptr, n int) uint64 {
	if n >= 8 {
		return *(*uint64)(unsafe.Pointer(addr))
	}
	if n == 4 {
		return uint64(*(*uint32)(unsafe.Pointer(addr)))
	}
	var w uint64
	for i := 0; i < n; i++ {
		w |= uint64(*(*byte)(unsafe.Pointer(addr + uintptr(i)))) << (uint(i) * 8)
	}
	return w
}

// ReadHighHalf reads the most significant 32 bits of the 64-bit word at addr,
// honouring the platform byte order.
func ReadHighHalf(addr uintptr) int32 {
	return *(*int32)(unsafe.Pointer(addr + HighHalfOffset))
}
