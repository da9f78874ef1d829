package bytebuf

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/bytebuf/resource"
)

// Codec selects the snapshot payload compression.
type Codec uint8

const (
	// CodecRaw stores the payload uncompressed.
	CodecRaw Codec = 0
	// CodecLZ4 uses LZ4 block compression (fast, lower ratio).
	CodecLZ4 Codec = 1
	// CodecZstd uses zstd compression (better ratio, slightly slower).
	CodecZstd Codec = 2
)

const (
	// snapshotMagic identifies snapshot streams (ASCII: "BBS1").
	snapshotMagic uint32 = 0x42425331
	// snapshotVersion is the current snapshot format version (v1.0).
	snapshotVersion uint32 = 0x00010000
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported snapshot version")
	ErrInvalidCodec   = errors.New("unknown snapshot codec")
)

// snapshotHeader precedes the payload in every snapshot stream. A CRC32 of
// header plus payload trails the stream.
type snapshotHeader struct {
	Magic            uint32
	Version          uint32
	Codec            uint8
	Padding          [3]byte
	UncompressedSize int64
	PayloadSize      int64
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// SnapshotOptions configures Dump and Restore.
type SnapshotOptions struct {
	// Codec compresses the payload. Incompressible payloads fall back to
	// CodecRaw; the header records what was actually stored.
	Codec Codec

	// Controller rate-limits the snapshot IO and, on Restore, charges the
	// restored buffer against its memory budget. Optional.
	Controller *resource.Controller
}

func applySnapshotOptions(optFns []func(o *SnapshotOptions)) *SnapshotOptions {
	opts := &SnapshotOptions{
		Codec: CodecRaw,
	}
	for _, fn := range optFns {
		fn(opts)
	}
	return opts
}

// WithCodec sets the snapshot payload compression.
func WithCodec(codec Codec) func(o *SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Codec = codec
	}
}

// WithSnapshotController sets the resource controller for snapshot IO.
func WithSnapshotController(rc *resource.Controller) func(o *SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Controller = rc
	}
}

// Dump writes b's unread window to w as a self-describing snapshot stream:
// header, optionally compressed payload, CRC32 trailer. The cursors are not
// moved.
func Dump(ctx context.Context, b Bytes, w io.Writer, optFns ...func(o *SnapshotOptions)) error {
	opts := applySnapshotOptions(optFns)

	if opts.Controller != nil {
		w = resource.NewRateLimitedWriter(ctx, w, opts.Controller)
	}

	size := b.ReadRemaining()
	raw := make([]byte, size)
	if size > 0 {
		if _, err := b.BytesStore().Read(b.ReadPosition(), raw); err != nil {
			return err
		}
	}

	payload, codec, err := encodePayload(raw, opts.Codec)
	if err != nil {
		return err
	}

	cw := NewChecksumWriter(w)
	hdr := snapshotHeader{
		Magic:            snapshotMagic,
		Version:          snapshotVersion,
		Codec:            uint8(codec),
		UncompressedSize: size,
		PayloadSize:      int64(len(payload)),
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

// Restore reads a snapshot stream and returns a new elastic native-backed
// view holding the payload, write cursor at the end, read cursor at zero. The
// caller owns the single reservation on the returned view.
func Restore(ctx context.Context, r io.Reader, optFns ...func(o *SnapshotOptions)) (*CheckedBytes, error) {
	opts := applySnapshotOptions(optFns)

	if opts.Controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, opts.Controller)
	}

	cr := NewChecksumReader(r)
	var hdr snapshotHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, hdr.Magic)
	}
	if hdr.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, hdr.Version)
	}
	if hdr.UncompressedSize < 0 || hdr.PayloadSize < 0 {
		return nil, fmt.Errorf("%w: negative size", ErrResizeInvalid)
	}

	payload := make([]byte, hdr.PayloadSize)
	if _, err := io.ReadFull(cr, payload); err != nil {
		return nil, err
	}

	var sum uint32
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return nil, err
	}
	if err := cr.Verify(sum); err != nil {
		return nil, err
	}

	raw, err := decodePayload(payload, Codec(hdr.Codec), hdr.UncompressedSize)
	if err != nil {
		return nil, err
	}

	var bufFns []func(o *Options)
	if opts.Controller != nil {
		bufFns = append(bufFns, WithController(opts.Controller))
	}
	b, err := AllocateElastic(hdr.UncompressedSize, bufFns...)
	if err != nil {
		return nil, err
	}
	if _, err := b.Write(raw); err != nil {
		_ = b.Release()
		return nil, err
	}
	return b, nil
}

// encodePayload compresses raw with the requested codec, falling back to
// CodecRaw when compression does not pay off.
func encodePayload(raw []byte, codec Codec) ([]byte, Codec, error) {
	if codec == CodecRaw || len(raw) == 0 {
		return raw, CodecRaw, nil
	}

	switch codec {
	case CodecLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, compressed, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 || n >= len(raw) {
			// Incompressible.
			return raw, CodecRaw, nil
		}
		return compressed[:n], CodecLZ4, nil

	case CodecZstd:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)

		compressed := enc.EncodeAll(raw, nil)
		if len(compressed) >= len(raw) {
			return raw, CodecRaw, nil
		}
		return compressed, CodecZstd, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidCodec, codec)
	}
}

// decodePayload inverts encodePayload.
func decodePayload(payload []byte, codec Codec, uncompressedSize int64) ([]byte, error) {
	switch codec {
	case CodecRaw:
		if int64(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("%w: raw payload size mismatch", ErrInvalidCodec)
		}
		return payload, nil

	case CodecLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, err
		}
		if int64(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidCodec)
		}
		return result, nil

	case CodecZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		result, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if int64(len(result)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidCodec)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCodec, codec)
	}
}
