package regression

import (
	"fmt"
	"sort"

	"github.com/arloliu/segfit/errs"
)

// Model is a segmented regression model: an ordered sequence of breakpoints
// partitioning the x range into contiguous fitted segments.
//
// A Model is immutable once returned. Structural operations (InsertBreakpoint,
// RemoveBreakpoint, Simplify, AutoSimplify) return new Model instances sharing
// the underlying read-only dataset, so the original top-down result stays
// available for comparison.
type Model struct {
	ds    *dataset
	cfg   Config
	sc    scale
	noise *NoiseModel
	segs  []Segment
	score Score
}

// SegmentRow is one row of the tabular export: segment boundaries plus the
// fitted coefficients and fit statistics.
type SegmentRow struct {
	// XLo and XHi bound the segment in original x units, half-open [XLo, XHi).
	XLo, XHi float64
	// Slope and Intercept are the fitted coefficients in fitting space.
	Slope, Intercept float64
	// RSS is the segment's weighted residual sum of squares.
	RSS float64
	// RSquared is the segment's weighted coefficient of determination.
	RSquared float64
	// Samples is the number of samples the segment was fit on.
	Samples int
}

// withSegments derives a new model with the given segmentation, recomputing
// the score. The dataset and noise model are shared, never copied.
func (m *Model) withSegments(segs []Segment) *Model {
	return &Model{
		ds:    m.ds,
		cfg:   m.cfg,
		sc:    m.sc,
		noise: m.noise,
		segs:  segs,
		score: scoreSegments(segs, m.ds.len(), m.cfg.Epsilon),
	}
}

// Mode returns the coordinate mode the model was fit in.
func (m *Model) Mode() Mode {
	return m.cfg.Mode
}

// Fingerprint returns the xxHash64 identity of the canonicalized input
// dataset and mode, letting consumers match exported models to the data that
// produced them.
func (m *Model) Fingerprint() uint64 {
	return m.ds.fingerprint
}

// SampleCount returns the number of samples the model was fit on.
func (m *Model) SampleCount() int {
	return m.ds.len()
}

// Noise returns the noise model used to weight the fit.
func (m *Model) Noise() *NoiseModel {
	return m.noise
}

// Score returns the model's fit score. Lower BIC is better.
func (m *Model) Score() Score {
	return m.score
}

// BIC returns the model's Bayesian Information Criterion. Lower is better.
func (m *Model) BIC() float64 {
	return m.score.BIC
}

// Breakpoints returns the ordered breakpoint x values in original units.
// A model with a single segment returns an empty slice.
func (m *Model) Breakpoints() []float64 {
	bps := make([]float64, 0, len(m.segs)-1)
	for i := 1; i < len(m.segs); i++ {
		bps = append(bps, m.segs[i].XLo)
	}

	return bps
}

// Segments returns a copy of the model's fitted segments in x order.
func (m *Model) Segments() []Segment {
	segs := make([]Segment, len(m.segs))
	copy(segs, m.segs)

	return segs
}

// Table returns the model as ordered rows of segment boundaries and
// coefficients for external plotting and reporting.
func (m *Model) Table() []SegmentRow {
	rows := make([]SegmentRow, len(m.segs))
	for i, s := range m.segs {
		rows[i] = SegmentRow{
			XLo:       s.XLo,
			XHi:       s.XHi,
			Slope:     s.Slope,
			Intercept: s.Intercept,
			RSS:       s.RSS,
			RSquared:  s.RSquared,
			Samples:   s.N,
		}
	}

	return rows
}

// Predict returns the model's prediction at x in original units.
// Values outside the fitted range extrapolate with the nearest edge segment.
func (m *Model) Predict(x float64) float64 {
	s := &m.segs[m.segmentIndexAt(x)]
	ty := s.Intercept + s.Slope*m.sc.X(x)

	return m.sc.InvY(ty)
}

// segmentIndexAt returns the index of the segment whose range contains x,
// clamped to the edge segments for out-of-range values.
func (m *Model) segmentIndexAt(x float64) int {
	// First segment whose upper bound exceeds x; the last segment closes
	// its upper bound.
	i := sort.Search(len(m.segs)-1, func(i int) bool {
		return x < m.segs[i].XHi
	})

	return i
}

// String returns a compact human-readable summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{mode: %s, segments: %d, breakpoints: %v, BIC: %.4f}",
		m.cfg.Mode, len(m.segs), m.Breakpoints(), m.score.BIC)
}

// InsertBreakpoint returns a new model with a breakpoint added at x.
//
// It fails with ErrInvalidBreakpoint when x already exists as a breakpoint,
// lies outside the open interval (min x, max x), or would create a segment
// with fewer than the configured minimum sample count. The two segments
// produced by the split are re-fit; the rest are untouched.
func (m *Model) InsertBreakpoint(x float64) (*Model, error) {
	n := m.ds.len()
	if x <= m.ds.x[0] || x >= m.ds.x[n-1] {
		return nil, fmt.Errorf("%w: %v outside open interval (%v, %v)", errs.ErrInvalidBreakpoint, x, m.ds.x[0], m.ds.x[n-1])
	}
	for i := 1; i < len(m.segs); i++ {
		if m.segs[i].XLo == x {
			return nil, fmt.Errorf("%w: breakpoint %v already exists", errs.ErrInvalidBreakpoint, x)
		}
	}

	// Samples with x >= breakpoint belong to the right segment.
	k := sort.SearchFloat64s(m.ds.x, x)
	j := m.segmentIndexAt(x)
	seg := &m.segs[j]

	if k-seg.lo < m.cfg.MinSegmentSize || seg.hi-k < m.cfg.MinSegmentSize {
		return nil, fmt.Errorf("%w: %v leaves a segment below %d samples", errs.ErrInvalidBreakpoint, x, m.cfg.MinSegmentSize)
	}

	left, right, err := m.splitSegment(j, k, x)
	if err != nil {
		return nil, err
	}

	segs := make([]Segment, 0, len(m.segs)+1)
	segs = append(segs, m.segs[:j]...)
	segs = append(segs, left, right)
	segs = append(segs, m.segs[j+1:]...)

	return m.withSegments(segs), nil
}

// RemoveBreakpoint returns a new model with the breakpoint at x removed and
// the two adjacent segments merged and re-fit.
//
// It fails with ErrInvalidBreakpoint when no breakpoint equals x.
func (m *Model) RemoveBreakpoint(x float64) (*Model, error) {
	for j := 1; j < len(m.segs); j++ {
		if m.segs[j].XLo != x {
			continue
		}

		merged, err := m.mergeSegments(j-1, j)
		if err != nil {
			return nil, err
		}

		segs := make([]Segment, 0, len(m.segs)-1)
		segs = append(segs, m.segs[:j-1]...)
		segs = append(segs, merged)
		segs = append(segs, m.segs[j+1:]...)

		return m.withSegments(segs), nil
	}

	return nil, fmt.Errorf("%w: no breakpoint at %v", errs.ErrInvalidBreakpoint, x)
}

// splitSegment re-fits segment j as two pieces split at sample index k with
// breakpoint value bp.
func (m *Model) splitSegment(j, k int, bp float64) (left, right Segment, err error) {
	seg := &m.segs[j]

	left, err = fitSegment(m.ds, seg.lo, k)
	if err != nil {
		return Segment{}, Segment{}, err
	}
	right, err = fitSegment(m.ds, k, seg.hi)
	if err != nil {
		return Segment{}, Segment{}, err
	}

	left.XLo, left.XHi = seg.XLo, bp
	right.XLo, right.XHi = bp, seg.XHi

	return left, right, nil
}

// mergeSegments re-fits segments i and j (adjacent, i < j) as one piece.
func (m *Model) mergeSegments(i, j int) (Segment, error) {
	merged, err := fitSegment(m.ds, m.segs[i].lo, m.segs[j].hi)
	if err != nil {
		return Segment{}, err
	}

	merged.XLo, merged.XHi = m.segs[i].XLo, m.segs[j].XHi

	return merged, nil
}
