package regression

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/segfit/errs"
)

// Segment is one fitted piece of a segmented model.
//
// The segment owns the half-open x range [XLo, XHi) in original units; the
// last segment of a model closes the upper bound. Slope and Intercept are
// expressed in the fitting coordinate space of the model's mode, so residuals
// and scores stay comparable across segments.
type Segment struct {
	// XLo and XHi bound the segment's x range in original units.
	XLo, XHi float64
	// Slope and Intercept are the fitted coefficients in fitting space.
	Slope, Intercept float64
	// RSS is the weighted residual sum of squares in fitting space.
	RSS float64
	// RSquared is the weighted coefficient of determination of the fit.
	RSquared float64
	// N is the number of samples the segment was fit on.
	N int

	// lo and hi are the sample index range [lo, hi) into the dataset.
	lo, hi int
}

// params returns the degrees of freedom consumed by the segment fit.
func (s *Segment) params() int {
	return 2 // slope + intercept
}

// fitSegment fits one weighted least-squares line over samples [lo, hi).
//
// It fails with ErrDegenerateSegment when the range has fewer than two
// samples or fewer than two distinct x values.
func fitSegment(ds *dataset, lo, hi int) (Segment, error) {
	n := hi - lo
	if n < 2 {
		return Segment{}, fmt.Errorf("%w: range [%d, %d) has %d samples", errs.ErrDegenerateSegment, lo, hi, n)
	}
	if ds.x[hi-1] == ds.x[lo] {
		return Segment{}, fmt.Errorf("%w: range [%d, %d) has a single distinct x value %v", errs.ErrDegenerateSegment, lo, hi, ds.x[lo])
	}

	intercept, slope := stat.LinearRegression(ds.tx[lo:hi], ds.ty[lo:hi], ds.w[lo:hi], false)

	seg := Segment{
		XLo:       ds.x[lo],
		XHi:       ds.x[hi-1],
		Slope:     slope,
		Intercept: intercept,
		N:         n,
		lo:        lo,
		hi:        hi,
	}
	seg.RSS, seg.RSquared = weightedFitStats(ds, lo, hi, slope, intercept)

	return seg, nil
}

// weightedFitStats computes the weighted RSS and R-squared of a fitted line
// over samples [lo, hi) in a single pass.
func weightedFitStats(ds *dataset, lo, hi int, slope, intercept float64) (rss, r2 float64) {
	var sumW, sumWY float64
	for i := lo; i < hi; i++ {
		sumW += ds.w[i]
		sumWY += ds.w[i] * ds.ty[i]
	}
	meanY := sumWY / sumW

	var ssTot float64
	for i := lo; i < hi; i++ {
		resid := ds.ty[i] - (intercept + slope*ds.tx[i])
		rss += ds.w[i] * resid * resid

		dev := ds.ty[i] - meanY
		ssTot += ds.w[i] * dev * dev
	}

	if ssTot == 0 {
		return rss, 0
	}

	return rss, 1.0 - rss/ssTot
}
