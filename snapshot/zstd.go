package snapshot

// zstdCodec compresses payloads with Zstandard.
//
// Two implementations exist behind build tags, mirroring the dual zstd
// stacks: cgo builds use valyala/gozstd (faster, binds libzstd), pure-Go
// builds fall back to klauspost/compress/zstd.
type zstdCodec struct{}
