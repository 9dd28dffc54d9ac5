// Package regression fits piecewise (segmented) linear models to noisy
// measurement data with unknown breakpoints.
//
// The engine targets data such as latency vs. payload size, where the
// underlying relationship changes behavior at unknown x positions and the
// noise variance itself may depend on x (heteroscedastic noise, common when x
// is sampled on an exponential scale spanning many orders of magnitude).
//
// # Algorithm
//
// Compute runs a top-down search: starting from a single full-range segment,
// it evaluates every admissible breakpoint position in every current segment,
// commits the single insertion that most improves the BIC score, and repeats
// until no insertion improves the score or the breakpoint cap is reached.
// Candidate evaluation is read-only against the committed model; every
// structural change is followed synchronously by a re-fit of exactly the
// affected segments, so the model never holds stale coefficients.
//
// The resulting model supports bottom-up simplification: Simplify removes the
// single breakpoint whose removal yields the best score, and AutoSimplify
// walks the whole removal trajectory and returns the model at the global BIC
// optimum. Both return new Model instances; the top-down result stays
// available for comparison.
//
// # Scoring
//
// Model selection uses BIC = n*ln(RSS/n) + k*ln(n) on the weighted residual
// sum of squares, with k = 2 per segment (slope + intercept) plus one per
// breakpoint location. Lower is better. The builder and the simplifier share
// this definition, so scores are comparable across both directions of the
// search.
//
// # Modes
//
//   - ModeLinear fits y = slope*x + intercept per segment.
//   - ModeLog fits ln(y) = slope*ln(x) + intercept, linearizing power-law
//     relationships; it requires x > 0 and y > 0.
//
// # Noise model
//
// With WithHeteroscedastic enabled, segment fits are weighted by the inverse
// of the estimated measurement variance at each sample's x: empirically per
// distinct x when every x carries repeated samples, otherwise via a power-law
// variance function fit on the squared residuals of an initial unweighted
// fit. Zero empirical variance is floored so weights stay finite.
//
// # Basic usage
//
//	model, err := regression.Compute(x, y, regression.WithLogMode())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(model.Breakpoints())
//	for _, row := range model.Table() {
//	    fmt.Printf("[%.2f, %.2f) slope=%.3f intercept=%.3f\n",
//	        row.XLo, row.XHi, row.Slope, row.Intercept)
//	}
//
//	simplified := model.AutoSimplify()
//	fmt.Printf("BIC %.2f -> %.2f\n", model.BIC(), simplified.BIC())
//
// The package performs no I/O: it consumes (x, y) slices and produces
// structured numeric output (breakpoints, per-segment coefficients,
// residuals, score) for external plotting and reporting. See the snapshot
// package for a compact binary export of a fitted model.
package regression
