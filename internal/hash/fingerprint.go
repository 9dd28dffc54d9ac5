// Package hash computes stable 64-bit identities for sample datasets.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of the given (x, y) pairs prefixed by a
// tag byte. The pairs must already be in canonical (sorted) order so equal
// datasets hash equally regardless of input order.
func Fingerprint(tag byte, x, y []float64) uint64 {
	var d xxhash.Digest
	d.Reset()

	var buf [16]byte
	buf[0] = tag
	_, _ = d.Write(buf[:1])

	for i := range x {
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(x[i]))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(y[i]))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
