package regression

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/segfit/errs"
)

// noiseKind enumerates how measurement variance is modeled.
type noiseKind uint8

const (
	// noiseHomoscedastic assumes constant variance: every sample gets unit weight.
	noiseHomoscedastic noiseKind = iota
	// noiseEmpirical estimates variance per distinct x from repeated samples.
	noiseEmpirical
	// noisePowerLaw fits variance(x) = c * x^k on squared residuals of an
	// initial unweighted fit.
	noisePowerLaw
)

// noiseKindNames maps noiseKind to their string representations.
var noiseKindNames = map[noiseKind]string{
	noiseHomoscedastic: "homoscedastic",
	noiseEmpirical:     "empirical",
	noisePowerLaw:      "power-law",
}

// NoiseModel describes how measurement variance scales with x and supplies
// the per-sample weights used by the segment fitter.
//
// The variance estimate is always positive: zero empirical variance (all
// samples at an x identical) is substituted with a floor so weights stay
// finite.
type NoiseModel struct {
	kind  noiseKind
	floor float64

	// Power-law parameters: variance(x) = c * x^k, x in original units.
	c, k float64

	// Empirical variance per distinct-x group, in fitting space.
	groupX   []float64
	groupVar []float64
}

// Kind returns a human-readable name of the active noise model.
func (n *NoiseModel) Kind() string {
	return noiseKindNames[n.kind]
}

// Variance returns the modeled measurement variance at x, in the fitting
// coordinate space. The result is always positive.
func (n *NoiseModel) Variance(x float64) float64 {
	switch n.kind {
	case noiseEmpirical:
		// Nearest distinct-x group; samples always hit their group exactly.
		i := sort.SearchFloat64s(n.groupX, x)
		if i == len(n.groupX) {
			i--
		} else if i > 0 && x-n.groupX[i-1] < n.groupX[i]-x {
			i--
		}

		return n.groupVar[i]
	case noisePowerLaw:
		return math.Max(n.c*math.Pow(x, n.k), n.floor)
	default:
		return 1.0
	}
}

// Weight returns the fitting weight at x, the inverse of the modeled variance.
func (n *NoiseModel) Weight(x float64) float64 {
	return 1.0 / n.Variance(x)
}

// estimateNoise builds the noise model for the dataset.
//
// With heteroscedastic treatment disabled the model is homoscedastic (unit
// weights). Otherwise, when every distinct x carries at least two samples the
// variance is estimated empirically per x; else a power-law variance function
// is fit on the squared residuals of an initial unweighted fit. The power-law
// form needs x > 0 everywhere; when that does not hold (possible under linear
// mode) the model falls back to homoscedastic.
func estimateNoise(ds *dataset, cfg *Config) (*NoiseModel, error) {
	if len(ds.groups) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct x values, got %d", errs.ErrInsufficientData, len(ds.groups))
	}

	nm := &NoiseModel{kind: noiseHomoscedastic, floor: cfg.Epsilon}
	if !cfg.Heteroscedastic {
		return nm, nil
	}

	if allGroupsRepeated(ds) {
		estimateEmpirical(ds, cfg, nm)
		return nm, nil
	}

	if ds.x[0] > 0 {
		estimatePowerLaw(ds, nm)
		return nm, nil
	}

	// Non-positive x admits neither variance form; stay homoscedastic.
	return nm, nil
}

// allGroupsRepeated reports whether every distinct x has at least 2 samples.
func allGroupsRepeated(ds *dataset) bool {
	for g := range ds.groups {
		lo, hi := ds.groupBounds(g)
		if hi-lo < 2 {
			return false
		}
	}

	return true
}

// estimateEmpirical fills nm with per-group variances.
//
// Under log mode the flag cfg.LogSpaceNoise selects whether variance is
// estimated directly on ln(y) or on y and then mapped into log space with
// the delta method var(ln y) ~= var(y) / mean(y)^2.
func estimateEmpirical(ds *dataset, cfg *Config, nm *NoiseModel) {
	nm.kind = noiseEmpirical
	nm.groupX = make([]float64, len(ds.groups))
	nm.groupVar = make([]float64, len(ds.groups))

	fitSpace := cfg.Mode != ModeLog || cfg.LogSpaceNoise
	for g := range ds.groups {
		lo, hi := ds.groupBounds(g)
		nm.groupX[g] = ds.x[lo]

		var v float64
		if fitSpace {
			v = stat.Variance(ds.ty[lo:hi], nil)
		} else {
			mean := stat.Mean(ds.y[lo:hi], nil)
			v = stat.Variance(ds.y[lo:hi], nil) / (mean * mean)
		}
		if v < nm.floor {
			v = nm.floor
		}
		nm.groupVar[g] = v
	}
}

// estimatePowerLaw fits variance(x) = c * x^k by regressing the log of the
// squared residuals of an unweighted full-range fit against ln(x).
func estimatePowerLaw(ds *dataset, nm *NoiseModel) {
	alpha, beta := stat.LinearRegression(ds.tx, ds.ty, nil, false)

	lnx := make([]float64, ds.len())
	lnr2 := make([]float64, ds.len())
	for i := range ds.x {
		r := ds.ty[i] - (alpha + beta*ds.tx[i])
		lnx[i] = math.Log(ds.x[i])
		lnr2[i] = math.Log(math.Max(r*r, nm.floor))
	}

	a, k := stat.LinearRegression(lnx, lnr2, nil, false)

	nm.kind = noisePowerLaw
	nm.c = math.Exp(a)
	nm.k = k
}

// applyWeights installs the noise model's weights on the dataset, normalized
// to mean 1 so weighted RSS magnitudes stay comparable to unweighted ones.
func applyWeights(ds *dataset, nm *NoiseModel) {
	sum := 0.0
	for i := range ds.x {
		ds.w[i] = nm.Weight(ds.x[i])
		sum += ds.w[i]
	}

	mean := sum / float64(ds.len())
	for i := range ds.w {
		ds.w[i] /= mean
	}
}
