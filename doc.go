// Package bytebuf provides zero-copy byte buffers over native memory,
// memory-mapped files and heap slices.
//
// A BytesStore owns a region of storage; a Bytes view layers read and write
// cursors over a store and streams fixed-width primitives through them. The
// same cursor machinery runs over every store kind, so code written against
// the Bytes interface works unchanged on heap, native and file-backed
// storage.
//
// # Quick Start
//
// Fixed native buffer:
//
//	b, _ := bytebuf.AllocateFixed(1024)
//	defer b.Release()
//	b.WriteInt64(42)
//	v, _ := b.ReadInt64()  // 42
//
// Elastic buffer, growing on demand:
//
//	b, _ := bytebuf.AllocateElastic(0)
//	defer b.Release()
//	for i := int64(0); i < 1_000_000; i++ {
//	    b.WriteInt64(i)
//	}
//
// Wrapping an existing slice:
//
//	b := bytebuf.WrapForRead(payload)
//	n, _ := bytebuf.ReadStopBit(b)
//
// # Checked and Unchecked Views
//
// Every operation on a checked view validates its cursor bounds and returns
// typed errors. Hot paths can switch to the unchecked twin:
//
//	u, _ := b.Unchecked(true)
//	u.WriteInt64(42)  // no bounds checks, caller keeps the cursor honest
//
// The unchecked view requires an address-exposing store (native or mapped;
// never heap). Build with the bytebuf_debug tag to turn its elided checks
// into assertions.
//
// # Memory-Mapped Files
//
// MappedFile divides a file into fixed-size chunks mapped on first access:
//
//	m, _ := bytebuf.OpenMappedFile("data.bin", 1<<20)
//	defer m.Close()
//	w, _ := m.AcquireBytesForWrite(3 << 20)  // chunk 3, extends the file
//	w.WriteInt64(42)
//	w.Release()
//
// # Lifetime
//
// Stores and the views over them are reference counted. Reserve adds a hold,
// Release drops one; the last release frees the memory, unmaps the chunk or
// closes the file. Use after the final release fails with a lifecycle error
// instead of touching freed memory.
//
// # Resource Budgeting
//
// An optional resource.Controller caps total off-heap memory and throttles
// snapshot IO:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	b, _ := bytebuf.AllocateFixed(1<<20, bytebuf.WithController(rc))
//
// # Snapshots
//
// Dump writes a view's unread window as a checksummed, optionally compressed
// stream; Restore rebuilds a buffer from one:
//
//	_ = bytebuf.Dump(ctx, b, f, bytebuf.WithCodec(bytebuf.CodecZstd))
//	restored, _ := bytebuf.Restore(ctx, f)
package bytebuf
