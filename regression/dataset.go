package regression

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/hash"
)

// dataset holds the samples of one regression run in canonical order.
//
// Samples are sorted by (x, y) so the same data always produces the same
// model regardless of input order. Duplicate x values are permitted; they
// stay adjacent after sorting and are never separated by a breakpoint.
type dataset struct {
	x, y   []float64 // original units, sorted by (x, y)
	tx, ty []float64 // fitting-space coordinates
	w      []float64 // per-sample weights, normalized to mean 1

	// groups holds the start index of each run of equal x values.
	// groups[i] is the first sample of group i; the run ends at
	// groups[i+1] (or len(x) for the last group).
	groups []int

	fingerprint uint64
}

// newDataset validates and canonicalizes the input samples.
//
// It fails fast with a descriptive error for mismatched lengths, empty
// input, non-finite values, domain violations under log mode, and datasets
// with fewer than two distinct x values.
func newDataset(x, y []float64, mode Mode, sc scale) (*dataset, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values vs %d y values", errs.ErrMismatchedLengths, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, errs.ErrEmptyDataset
	}

	ds := &dataset{
		x: make([]float64, len(x)),
		y: make([]float64, len(y)),
	}
	copy(ds.x, x)
	copy(ds.y, y)

	sort.Sort(byXY{ds.x, ds.y})

	for i := range ds.x {
		if math.IsNaN(ds.x[i]) || math.IsInf(ds.x[i], 0) || math.IsNaN(ds.y[i]) || math.IsInf(ds.y[i], 0) {
			return nil, fmt.Errorf("%w: sample %d (x=%v, y=%v)", errs.ErrNonFiniteSample, i, ds.x[i], ds.y[i])
		}
		if mode == ModeLog && (ds.x[i] <= 0 || ds.y[i] <= 0) {
			return nil, fmt.Errorf("%w: sample %d (x=%v, y=%v)", errs.ErrNonPositiveSample, i, ds.x[i], ds.y[i])
		}
	}

	ds.tx = make([]float64, len(ds.x))
	ds.ty = make([]float64, len(ds.y))
	for i := range ds.x {
		ds.tx[i] = sc.X(ds.x[i])
		ds.ty[i] = sc.Y(ds.y[i])
	}

	for i := range ds.x {
		if i == 0 || ds.x[i] != ds.x[i-1] {
			ds.groups = append(ds.groups, i)
		}
	}
	if len(ds.groups) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct x values, got %d", errs.ErrInsufficientData, len(ds.groups))
	}

	// Unit weights until the noise model replaces them.
	ds.w = make([]float64, len(ds.x))
	for i := range ds.w {
		ds.w[i] = 1.0
	}

	ds.fingerprint = hash.Fingerprint(byte(mode), ds.x, ds.y)

	return ds, nil
}

// len returns the number of samples.
func (ds *dataset) len() int {
	return len(ds.x)
}

// groupBounds returns the sample index range [lo, hi) of distinct-x group g.
func (ds *dataset) groupBounds(g int) (lo, hi int) {
	lo = ds.groups[g]
	hi = ds.len()
	if g+1 < len(ds.groups) {
		hi = ds.groups[g+1]
	}

	return lo, hi
}

// splitIndexes returns every admissible split position inside [lo, hi):
// sample indexes k such that x[k-1] != x[k], i.e. positions that separate
// two distinct-x groups. A split at k puts samples [lo, k) left and
// [k, hi) right.
func (ds *dataset) splitIndexes(lo, hi int) []int {
	var out []int
	for k := lo + 1; k < hi; k++ {
		if ds.x[k-1] != ds.x[k] {
			out = append(out, k)
		}
	}

	return out
}

// byXY sorts paired slices by x, then y, for a canonical sample order.
type byXY struct {
	x, y []float64
}

func (s byXY) Len() int { return len(s.x) }

func (s byXY) Less(i, j int) bool {
	if s.x[i] != s.x[j] {
		return s.x[i] < s.x[j]
	}

	return s.y[i] < s.y[j]
}

func (s byXY) Swap(i, j int) {
	s.x[i], s.x[j] = s.x[j], s.x[i]
	s.y[i], s.y[j] = s.y[j], s.y[i]
}
