// Package snapshot serializes fitted regression models into a compact,
// self-describing binary format for storage and transfer.
//
// A snapshot carries the segment table and fit score, not the samples: it is
// a read-only export for plotting, reporting and cache lookups, paired back
// to its source data through the dataset fingerprint. Decoding never needs
// the original dataset.
//
// # Format
//
// Every snapshot starts with a fixed 32-byte header holding the magic,
// format version, regression mode, compression type, segment and sample
// counts, the dataset fingerprint, and the compressed and raw payload sizes.
// The payload follows, then an xxHash64 checksum over the header and
// payload. All integers are little-endian.
//
// The payload can be stored raw or compressed with Zstandard, S2 or LZ4:
//
//	data, err := snapshot.Encode(model, snapshot.WithCompression(snapshot.CompressionZstd))
//	if err != nil {
//		return err
//	}
//	snap, err := snapshot.Decode(data)
//
// Zstandard uses the gozstd cgo bindings when cgo is enabled and falls back
// to the pure-Go klauspost implementation otherwise; both produce standard
// Zstandard frames and interoperate.
package snapshot
