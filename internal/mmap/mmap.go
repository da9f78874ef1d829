package mmap

import (
	"errors"
	"os"
)

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

var (
	// ErrInvalidSize is returned when a mapping size is not positive.
	ErrInvalidSize = errors.New("mmap: invalid mapping size")
	// ErrUnalignedOffset is returned when a file offset is not page aligned.
	ErrUnalignedOffset = errors.New("mmap: offset is not page aligned")
)

// MapAnon creates a read-write anonymous mapping of size bytes.
func MapAnon(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return osMapAnon(size)
}

// MapFile creates a read-write shared mapping of size bytes of f starting at
// offset. offset must be a multiple of the OS page size.
func MapFile(f *os.File, offset int64, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if offset%int64(os.Getpagesize()) != 0 {
		return nil, ErrUnalignedOffset
	}
	return osMapFile(f, offset, size)
}

// Unmap releases a mapping previously returned by MapAnon or MapFile.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return osUnmap(data)
}

// Sync flushes a file-backed mapping to the underlying file.
func Sync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return osSync(data)
}

// Advise provides kernel hints about the expected access pattern.
func Advise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}
	return osAdvise(data, pattern)
}
