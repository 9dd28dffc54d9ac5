// Package errs defines sentinel errors shared across segfit packages.
//
// All errors are plain sentinel values so callers can classify failures with
// errors.Is. Call sites add context by wrapping the sentinel:
//
//	return fmt.Errorf("%w: segment [%d, %d) has %d samples", errs.ErrDegenerateSegment, lo, hi, n)
package errs

import "errors"

// Input validation errors, raised by the facade before any fitting starts.
var (
	// ErrMismatchedLengths indicates the x and y slices differ in length.
	ErrMismatchedLengths = errors.New("mismatched x and y lengths")
	// ErrEmptyDataset indicates no samples were provided.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrInsufficientData indicates too few distinct x values to fit anything.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrNonPositiveSample indicates an x <= 0 or y <= 0 sample under log mode.
	ErrNonPositiveSample = errors.New("non-positive sample in log mode")
	// ErrInvalidMode indicates an unknown regression mode.
	ErrInvalidMode = errors.New("invalid regression mode")
	// ErrInvalidOption indicates an out-of-range option value.
	ErrInvalidOption = errors.New("invalid option value")
	// ErrNonFiniteSample indicates a NaN or infinite sample value.
	ErrNonFiniteSample = errors.New("non-finite sample value")
)

// Fitting and model-structure errors.
var (
	// ErrDegenerateSegment indicates a segment that cannot be fit: too few
	// samples or too few distinct x values.
	ErrDegenerateSegment = errors.New("degenerate segment")
	// ErrInvalidBreakpoint indicates a structural violation on breakpoint
	// insertion or removal.
	ErrInvalidBreakpoint = errors.New("invalid breakpoint")
	// ErrNoBreakpoints indicates Simplify was called on a model with zero
	// breakpoints.
	ErrNoBreakpoints = errors.New("model has no breakpoints")
)

// Snapshot codec errors.
var (
	// ErrInvalidMagic indicates the snapshot does not start with the expected
	// magic bytes.
	ErrInvalidMagic = errors.New("invalid snapshot magic")
	// ErrInvalidSnapshotSize indicates the snapshot is truncated or its
	// declared sizes are inconsistent.
	ErrInvalidSnapshotSize = errors.New("invalid snapshot size")
	// ErrChecksumMismatch indicates the snapshot payload failed checksum
	// verification.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrUnsupportedVersion indicates a snapshot produced by an incompatible
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)
