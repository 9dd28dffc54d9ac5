// Package segfit fits piecewise-linear models to noisy scalar measurements,
// discovering breakpoints automatically with a BIC-guided search.
//
// Given paired x/y samples, segfit partitions the x range into contiguous
// segments, fits a weighted least-squares line per segment, and keeps only
// the breakpoints the data justifies: a split is accepted only when it
// lowers the Bayesian Information Criterion of the whole model, so noise
// alone does not fragment the fit.
//
// # Core Features
//
//   - Top-down breakpoint discovery with a global BIC acceptance test
//   - Bottom-up simplification to prune breakpoints from an existing model
//   - Linear and log-log fitting modes for additive and power-law data
//   - Heteroscedastic weighting from repeated samples or a power-law
//     variance fit
//   - Deterministic output for identical inputs and options
//   - Compact binary snapshots with optional compression (snapshot package)
//
// # Basic Usage
//
// Fitting latency measurements against payload size:
//
//	import "github.com/arloliu/segfit"
//
//	model, err := segfit.ComputeRegression(sizes, latencies)
//	if err != nil {
//	    return err
//	}
//	for _, row := range model.Table() {
//	    fmt.Printf("[%g, %g) slope=%.3f\n", row.XLo, row.XHi, row.Slope)
//	}
//	fmt.Println(model.Predict(4096))
//
// Power-law data sampled on an exponential x grid fits better in log-log
// coordinates:
//
//	model, err := segfit.ComputeLogRegression(sizes, latencies,
//	    segfit.WithHeteroscedastic())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the regression
// package, simplifying the most common use cases. For fine-grained control
// over the model (breakpoint editing, simplification, noise inspection),
// use the regression package directly; the snapshot package serializes
// fitted models.
package segfit

import (
	"github.com/arloliu/segfit/regression"
)

// Model is a fitted segmented regression model.
// See the regression package for the full API.
type Model = regression.Model

// Option configures a regression run.
type Option = regression.Option

// Mode selects the fitting coordinate system.
type Mode = regression.Mode

const (
	// ModeLinear fits segments in original coordinates.
	ModeLinear = regression.ModeLinear
	// ModeLog fits segments in log-log coordinates.
	ModeLog = regression.ModeLog
)

// Re-exported regression options, so simple callers need only this package.
var (
	WithMode            = regression.WithMode
	WithHeteroscedastic = regression.WithHeteroscedastic
	WithLogSpaceNoise   = regression.WithLogSpaceNoise
	WithMinSegmentSize  = regression.WithMinSegmentSize
	WithMaxBreakpoints  = regression.WithMaxBreakpoints
	WithMinImprovement  = regression.WithMinImprovement
	WithEpsilon         = regression.WithEpsilon
)

// ComputeRegression fits a segmented linear model to the samples.
//
// It validates the inputs, estimates the noise model, fits a single segment
// over the full range, and then inserts breakpoints top-down while each
// insertion improves the model's BIC.
func ComputeRegression(x, y []float64, opts ...Option) (*Model, error) {
	return regression.Compute(x, y, opts...)
}

// ComputeLogRegression fits a segmented model in log-log coordinates.
// All samples must satisfy x > 0 and y > 0.
//
// It is shorthand for ComputeRegression with the log mode option prepended;
// later options still apply in order.
func ComputeLogRegression(x, y []float64, opts ...Option) (*Model, error) {
	combined := make([]Option, 0, len(opts)+1)
	combined = append(combined, regression.WithLogMode())
	combined = append(combined, opts...)

	return regression.Compute(x, y, combined...)
}
