//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osMapAnon(size int) ([]byte, error) {
	// VirtualAlloc with MEM_COMMIT uses demand paging: pages are only backed
	// by physical memory when first accessed, matching Unix mmap behavior.
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func osMapFile(f *os.File, offset int64, size int) ([]byte, error) {
	maxSize := uint64(offset) + uint64(size)
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil,
		windows.PAGE_READWRITE, uint32(maxSize>>32), uint32(maxSize), nil)
	if err != nil {
		return nil, err
	}
	// The view holds a reference; the mapping handle can be closed now.
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE,
		uint32(uint64(offset)>>32), uint32(uint64(offset)), uintptr(size))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func osUnmap(data []byte) error {
	addr := uintptr(unsafe.Pointer(&data[0]))
	// Anonymous regions come from VirtualAlloc; file views from MapViewOfFile.
	// UnmapViewOfFile fails for the former, so fall back to VirtualFree.
	if err := windows.UnmapViewOfFile(addr); err == nil {
		return nil
	}
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

func osSync(data []byte) error {
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.FlushViewOfFile(addr, uintptr(len(data)))
}

func osAdvise(data []byte, pattern AccessPattern) error {
	// Windows has no direct madvise equivalent; the page cache still handles
	// sequential access well.
	_ = data
	_ = pattern
	return nil
}
