package mmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapAnon(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := MapAnon(4096)
		if err != nil {
			t.Fatalf("MapAnon: %v", err)
		}
		defer Unmap(data) //nolint:errcheck

		if len(data) != 4096 {
			t.Fatalf("expected 4096 bytes, got %d", len(data))
		}
		for i, b := range data {
			if b != 0 {
				t.Fatalf("byte %d not zero filled: %d", i, b)
			}
		}

		data[0] = 0xAB
		data[4095] = 0xCD
		if data[0] != 0xAB || data[4095] != 0xCD {
			t.Error("mapping is not writable")
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		if _, err := MapAnon(0); err != ErrInvalidSize {
			t.Errorf("expected ErrInvalidSize, got %v", err)
		}
		if _, err := MapAnon(-1); err != ErrInvalidSize {
			t.Errorf("expected ErrInvalidSize, got %v", err)
		}
	})
}

func TestMapFile(t *testing.T) {
	newFile := func(t *testing.T, size int64) *os.File {
		t.Helper()
		f, err := os.Create(filepath.Join(t.TempDir(), "mmap.bin"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		t.Cleanup(func() { f.Close() }) //nolint:errcheck
		if err := f.Truncate(size); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return f
	}

	t.Run("writes reach the file", func(t *testing.T) {
		f := newFile(t, 8192)

		data, err := MapFile(f, 0, 8192)
		if err != nil {
			t.Fatalf("MapFile: %v", err)
		}

		copy(data, "hello mmap")
		if err := Sync(data); err != nil {
			t.Fatalf("Sync: %v", err)
		}
		if err := Unmap(data); err != nil {
			t.Fatalf("Unmap: %v", err)
		}

		raw := make([]byte, 10)
		if _, err := f.ReadAt(raw, 0); err != nil {
			t.Fatalf("ReadAt: %v", err)
		}
		if string(raw) != "hello mmap" {
			t.Errorf("expected %q, got %q", "hello mmap", raw)
		}
	})

	t.Run("page aligned offset", func(t *testing.T) {
		ps := int64(os.Getpagesize())
		f := newFile(t, 2*ps)

		data, err := MapFile(f, ps, int(ps))
		if err != nil {
			t.Fatalf("MapFile at offset: %v", err)
		}
		defer Unmap(data) //nolint:errcheck

		data[0] = 0x42
		if err := Sync(data); err != nil {
			t.Fatalf("Sync: %v", err)
		}

		raw := make([]byte, 1)
		if _, err := f.ReadAt(raw, ps); err != nil {
			t.Fatalf("ReadAt: %v", err)
		}
		if raw[0] != 0x42 {
			t.Errorf("expected 0x42 at offset %d, got %#x", ps, raw[0])
		}
	})

	t.Run("unaligned offset fails", func(t *testing.T) {
		f := newFile(t, 8192)

		if _, err := MapFile(f, 1, 4096); err != ErrUnalignedOffset {
			t.Errorf("expected ErrUnalignedOffset, got %v", err)
		}
	})
}

func TestAdvise(t *testing.T) {
	data, err := MapAnon(4096)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	defer Unmap(data) //nolint:errcheck

	patterns := []AccessPattern{
		AccessDefault, AccessSequential, AccessRandom, AccessWillNeed, AccessDontNeed,
	}
	for _, p := range patterns {
		if err := Advise(data, p); err != nil {
			t.Errorf("Advise(%d): %v", p, err)
		}
	}
}

func TestEmptySlices(t *testing.T) {
	if err := Unmap(nil); err != nil {
		t.Errorf("Unmap(nil): %v", err)
	}
	if err := Sync(nil); err != nil {
		t.Errorf("Sync(nil): %v", err)
	}
	if err := Advise(nil, AccessRandom); err != nil {
		t.Errorf("Advise(nil): %v", err)
	}
}
