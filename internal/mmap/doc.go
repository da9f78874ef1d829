// Package mmap provides the platform mapping layer for native stores and
// mapped-file chunks.
//
// # Overview
//
// Two kinds of mappings are exposed:
//
//   - MapAnon: read-write anonymous mappings, the allocation substrate for
//     off-heap stores outside the garbage collector's control.
//   - MapFile: read-write shared mappings of a file region, the substrate for
//     chunked mapped files. Offsets must be page aligned.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2), munmap(2), msync(2), madvise(2)
//   - Windows: CreateFileMapping/MapViewOfFile, VirtualAlloc for anonymous
//     memory; madvise is a no-op
//
// # Lifetime
//
// The package hands out plain []byte slices and takes them back in Unmap.
// Callers own the lifetime; accessing a slice after Unmap is undefined
// behavior. The reference-counting discipline lives a layer above.
package mmap
