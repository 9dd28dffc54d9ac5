package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/segfit/errs"
)

// CompressionType selects the snapshot payload compression.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0x1
	// CompressionZstd compresses the payload with Zstandard.
	CompressionZstd CompressionType = 0x2
	// CompressionS2 compresses the payload with S2.
	CompressionS2 CompressionType = 0x3
	// CompressionLZ4 compresses the payload with LZ4 block compression.
	CompressionLZ4 CompressionType = 0x4
)

// String returns the string representation of the compression type.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// valid reports whether the compression type is a known value.
func (c CompressionType) valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// Codec compresses and decompresses snapshot payloads.
//
// Decompress receives the original payload size, which the snapshot header
// records, so block codecs can allocate exact output buffers instead of
// guessing.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte, originalSize int) ([]byte, error)
}

// codecFor returns the Codec for a compression type.
func codecFor(c CompressionType) (Codec, error) {
	switch c {
	case CompressionNone:
		return noopCodec{}, nil
	case CompressionZstd:
		return zstdCodec{}, nil
	case CompressionS2:
		return s2Codec{}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, c)
	}
}

// noopCodec passes payloads through unchanged.
type noopCodec struct{}

func (noopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (noopCodec) Decompress(data []byte, _ int) ([]byte, error) {
	return data, nil
}

// s2Codec compresses payloads with S2 block compression.
type s2Codec struct{}

func (s2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Codec) Decompress(data []byte, _ int) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// lz4Codec compresses payloads with LZ4 block compression. Incompressible
// payloads are stored raw; Decompress detects that case by comparing the
// input length against the recorded original size.
type lz4Codec struct{}

func (lz4Codec) Compress(data []byte) ([]byte, error) {
	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// Incompressible; store raw.
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	return dst[:n], nil
}

func (lz4Codec) Decompress(data []byte, originalSize int) ([]byte, error) {
	if len(data) == originalSize {
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	out := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out[:n], nil
}
