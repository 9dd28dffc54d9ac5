package regression

import (
	"math"

	"github.com/arloliu/segfit/internal/options"
)

// Compute fits a segmented regression to the given samples.
//
// The samples need not be sorted; they are canonicalized internally. The
// returned model is the converged top-down result: starting from a single
// full-range segment, the builder repeatedly commits the breakpoint insertion
// that most improves the BIC score until no insertion improves it or the
// breakpoint cap is reached. Use Simplify or AutoSimplify on the result for
// bottom-up simplification.
//
// Example:
//
//	model, err := regression.Compute(x, y, regression.WithLogMode())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(model.Breakpoints())
func Compute(x, y []float64, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	sc := scaleFor(cfg.Mode)
	ds, err := newDataset(x, y, cfg.Mode, sc)
	if err != nil {
		return nil, err
	}

	nm, err := estimateNoise(ds, &cfg)
	if err != nil {
		return nil, err
	}
	applyWeights(ds, nm)

	root, err := fitSegment(ds, 0, ds.len())
	if err != nil {
		return nil, err
	}

	m := &Model{ds: ds, cfg: cfg, sc: sc, noise: nm, segs: []Segment{root}}
	m.score = scoreSegments(m.segs, ds.len(), cfg.Epsilon)

	grow(m)

	return m, nil
}

// splitCandidate is one tentative breakpoint insertion under evaluation.
type splitCandidate struct {
	segIdx      int
	k           int     // sample split index into the dataset
	bp          float64 // breakpoint value in original units
	bic         float64 // BIC of the model with this split committed
	left, right Segment
	centerDist  int // |k - segment center|, for the tie-break
}

// grow runs the top-down state machine on m, mutating it in place.
//
// Each step evaluates every admissible split position in every current
// segment against a read-only view of the committed model and commits the
// single best insertion; the model transitions to converged when no
// insertion improves the score beyond the configured threshold or the
// breakpoint cap is reached. Candidates that cannot be fit are skipped
// rather than aborting the search.
func grow(m *Model) {
	for len(m.segs)-1 < m.cfg.MaxBreakpoints {
		best := findBestSplit(m)
		if best == nil {
			return
		}
		if m.score.BIC-best.bic <= m.cfg.MinImprovement+bicTol {
			return
		}

		segs := make([]Segment, 0, len(m.segs)+1)
		segs = append(segs, m.segs[:best.segIdx]...)
		segs = append(segs, best.left, best.right)
		segs = append(segs, m.segs[best.segIdx+1:]...)

		m.segs = segs
		m.score = scoreSegments(segs, m.ds.len(), m.cfg.Epsilon)
	}
}

// findBestSplit scans all segments for the admissible split with the lowest
// resulting BIC. Returns nil when no segment admits a split.
//
// Ties within bicTol prefer the split closest to the middle sample of its
// segment, then the leftmost candidate, keeping the search deterministic.
func findBestSplit(m *Model) *splitCandidate {
	var best *splitCandidate

	for j := range m.segs {
		seg := &m.segs[j]
		center := seg.lo + (seg.hi-seg.lo)/2

		for _, k := range m.ds.splitIndexes(seg.lo, seg.hi) {
			if k-seg.lo < m.cfg.MinSegmentSize || seg.hi-k < m.cfg.MinSegmentSize {
				continue
			}

			bp := m.sc.InvX(0.5 * (m.ds.tx[k-1] + m.ds.tx[k]))
			left, right, err := m.splitSegment(j, k, bp)
			if err != nil {
				continue // failing candidates are excluded, not fatal
			}

			rss := m.score.RSS - seg.RSS + left.RSS + right.RSS
			params := m.score.Params + 3 // two extra coefficients + one breakpoint
			cand := &splitCandidate{
				segIdx:     j,
				k:          k,
				bp:         bp,
				bic:        bicFor(rss, params, m.ds.len(), m.cfg.Epsilon),
				left:       left,
				right:      right,
				centerDist: absInt(k - center),
			}

			if best == nil || better(cand, best) {
				best = cand
			}
		}
	}

	return best
}

// better reports whether candidate a beats the incumbent b.
func better(a, b *splitCandidate) bool {
	if a.bic < b.bic-bicTol {
		return true
	}
	if a.bic > b.bic+bicTol {
		return false
	}

	return a.centerDist < b.centerDist
}

// bicFor computes the BIC of a segmentation from its aggregate weighted RSS.
func bicFor(rss float64, params, n int, eps float64) float64 {
	fn := float64(n)
	return fn*math.Log(math.Max(rss, eps)/fn) + float64(params)*math.Log(fn)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
