//go:build cgo

package snapshot

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the payload using Zstandard at a balanced level.
func (zstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses a Zstandard payload.
func (zstdCodec) Decompress(data []byte, _ int) ([]byte, error) {
	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
