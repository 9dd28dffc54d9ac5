package regression

// bicTol is the tolerance used when comparing BIC values: differences within
// bicTol are treated as ties and resolved by the deterministic tie-break
// rules instead of floating-point noise.
const bicTol = 1e-9

// Score summarizes the fit quality of a segmented model.
//
// A Score is recomputed whenever the model structure changes; it is never
// mutated in place. Lower BIC is better, and the same definition is used by
// the top-down builder and the bottom-up simplifier.
type Score struct {
	// RSS is the total weighted residual sum of squares across all
	// segments, in fitting space.
	RSS float64
	// BIC is n*ln(RSS/n) + k*ln(n). The parameter count k is 2 per segment
	// (slope + intercept) plus one per breakpoint location.
	BIC float64
	// Params is the parameter count k used in the BIC penalty.
	Params int
	// N is the total sample count.
	N int
}

// scoreSegments computes the Score of a segmentation over n samples.
//
// The RSS is floored at eps before taking the logarithm so perfect fits
// (RSS = 0) produce a finite score instead of negative infinity.
func scoreSegments(segs []Segment, n int, eps float64) Score {
	var rss float64
	params := len(segs) - 1 // one parameter per breakpoint location
	for i := range segs {
		rss += segs[i].RSS
		params += segs[i].params()
	}

	return Score{
		RSS:    rss,
		BIC:    bicFor(rss, params, n, eps),
		Params: params,
		N:      n,
	}
}
