package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/regression"
)

const (
	// magic identifies a snapshot, the little-endian bytes "SGF1".
	magic uint32 = 0x31464753
	// version is the current snapshot format version.
	version byte = 1

	headerSize  = 32
	trailerSize = 8

	// scoreSize is RSS + BIC as float64 plus the parameter count.
	scoreSize = 8 + 8 + 4
	// segmentSize is six float64 fields plus the sample count.
	segmentSize = 6*8 + 4
)

// Snapshot is a decoded model export: the fit summary and segment table,
// without the underlying samples.
type Snapshot struct {
	// Mode is the coordinate mode the model was fit in.
	Mode regression.Mode
	// Compression is the payload compression the snapshot was encoded with.
	Compression CompressionType
	// Fingerprint is the xxHash64 identity of the dataset the model was
	// fit on.
	Fingerprint uint64
	// SampleCount is the number of samples the model was fit on.
	SampleCount int
	// Score is the model's fit score.
	Score regression.Score
	// Segments are the fitted segments in x order.
	Segments []regression.SegmentRow
}

// Breakpoints returns the ordered breakpoint x values in original units.
func (s *Snapshot) Breakpoints() []float64 {
	bps := make([]float64, 0, len(s.Segments)-1)
	for i := 1; i < len(s.Segments); i++ {
		bps = append(bps, s.Segments[i].XLo)
	}

	return bps
}

// Encode serializes a model into the snapshot wire format.
//
// Layout: a 32-byte header (magic, version, mode, compression, segment and
// sample counts, dataset fingerprint, compressed and raw payload sizes), the
// possibly-compressed payload (score then segment table), and an xxHash64
// checksum over header and payload.
func Encode(m *regression.Model, opts ...Option) ([]byte, error) {
	cfg := defaultEncodeConfig()
	if err := applyOptions(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := codecFor(cfg.compression)
	if err != nil {
		return nil, err
	}

	rows := m.Table()
	raw := encodePayload(m.Score(), rows)

	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot compression failed: %w", err)
	}

	buf := make([]byte, headerSize, headerSize+len(payload)+trailerSize)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	buf[4] = version
	buf[5] = byte(m.Mode())
	buf[6] = byte(cfg.compression)
	buf[7] = 0 // reserved
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(rows)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(m.SampleCount()))
	binary.LittleEndian.PutUint64(buf[16:24], m.Fingerprint())
	binary.LittleEndian.PutUint32(buf[24:28], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(len(raw)))

	buf = append(buf, payload...)
	buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf))

	return buf, nil
}

// Decode parses a snapshot produced by Encode.
//
// It verifies the magic, version, declared sizes and checksum before
// touching the payload, so corrupted or truncated snapshots fail cleanly.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidSnapshotSize, len(data), headerSize+trailerSize)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != magic {
		return nil, errs.ErrInvalidMagic
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: version %d", errs.ErrUnsupportedVersion, data[4])
	}

	mode := regression.Mode(data[5])
	compression := CompressionType(data[6])
	segCount := int(binary.LittleEndian.Uint32(data[8:12]))
	sampleCount := int(binary.LittleEndian.Uint32(data[12:16]))
	fingerprint := binary.LittleEndian.Uint64(data[16:24])
	payloadSize := int(binary.LittleEndian.Uint32(data[24:28]))
	rawSize := int(binary.LittleEndian.Uint32(data[28:32]))

	if len(data) != headerSize+payloadSize+trailerSize {
		return nil, fmt.Errorf("%w: %d bytes, header declares %d", errs.ErrInvalidSnapshotSize, len(data), headerSize+payloadSize+trailerSize)
	}

	body := data[:headerSize+payloadSize]
	sum := binary.LittleEndian.Uint64(data[headerSize+payloadSize:])
	if xxhash.Sum64(body) != sum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := codecFor(compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(body[headerSize:], rawSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot decompression failed: %w", err)
	}
	if len(raw) != rawSize || rawSize != scoreSize+segCount*segmentSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, expected %d", errs.ErrInvalidSnapshotSize, len(raw), scoreSize+segCount*segmentSize)
	}

	score, rows := decodePayload(raw, segCount)
	score.N = sampleCount

	return &Snapshot{
		Mode:        mode,
		Compression: compression,
		Fingerprint: fingerprint,
		SampleCount: sampleCount,
		Score:       score,
		Segments:    rows,
	}, nil
}

func encodePayload(score regression.Score, rows []regression.SegmentRow) []byte {
	buf := make([]byte, 0, scoreSize+len(rows)*segmentSize)

	buf = appendFloat64(buf, score.RSS)
	buf = appendFloat64(buf, score.BIC)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(score.Params))

	for _, r := range rows {
		buf = appendFloat64(buf, r.XLo)
		buf = appendFloat64(buf, r.XHi)
		buf = appendFloat64(buf, r.Slope)
		buf = appendFloat64(buf, r.Intercept)
		buf = appendFloat64(buf, r.RSS)
		buf = appendFloat64(buf, r.RSquared)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r.Samples))
	}

	return buf
}

func decodePayload(raw []byte, segCount int) (regression.Score, []regression.SegmentRow) {
	var score regression.Score
	score.RSS = readFloat64(raw[0:8])
	score.BIC = readFloat64(raw[8:16])
	score.Params = int(binary.LittleEndian.Uint32(raw[16:20]))

	rows := make([]regression.SegmentRow, segCount)
	off := scoreSize
	for i := range rows {
		rows[i] = regression.SegmentRow{
			XLo:       readFloat64(raw[off : off+8]),
			XHi:       readFloat64(raw[off+8 : off+16]),
			Slope:     readFloat64(raw[off+16 : off+24]),
			Intercept: readFloat64(raw[off+24 : off+32]),
			RSS:       readFloat64(raw[off+32 : off+40]),
			RSquared:  readFloat64(raw[off+40 : off+48]),
			Samples:   int(binary.LittleEndian.Uint32(raw[off+48 : off+52])),
		}
		off += segmentSize
	}

	return score, rows
}

func appendFloat64(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
}

func readFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
