package regression

import (
	"math"
	"strings"
)

// Mode selects the coordinate system segments are fitted in.
type Mode uint8

const (
	// ModeLinear fits y = slope*x + intercept in original coordinates.
	ModeLinear Mode = iota
	// ModeLog fits ln(y) = slope*ln(x) + intercept, linearizing
	// multiplicative/power-law relationships on exponentially sampled x.
	// Requires x > 0 and y > 0 for every sample.
	ModeLog
)

// modeNames maps Mode to their string representations.
var modeNames = map[Mode]string{
	ModeLinear: "linear",
	ModeLog:    "log",
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	if name, exists := modeNames[m]; exists {
		return name
	}

	return "unknown"
}

// ModeFromString returns the Mode for a given string name.
// Returns Mode(255) for unknown names.
func ModeFromString(name string) Mode {
	switch strings.ToLower(name) {
	case "linear":
		return ModeLinear
	case "log":
		return ModeLog
	default:
		return Mode(255)
	}
}

// valid reports whether the mode is a known value.
func (m Mode) valid() bool {
	_, exists := modeNames[m]
	return exists
}

// scale transforms samples between original and fitting coordinates.
// A scale is selected once per regression run and shared by the fitter,
// the noise model and prediction, so every score stays comparable.
type scale interface {
	// X maps an original x into fitting space.
	X(x float64) float64
	// InvX maps a fitting-space x back to original units.
	InvX(tx float64) float64
	// Y maps an original y into fitting space.
	Y(y float64) float64
	// InvY maps a fitting-space y back to original units.
	InvY(ty float64) float64
}

// linearScale is the identity transform for ModeLinear.
type linearScale struct{}

func (linearScale) X(x float64) float64     { return x }
func (linearScale) InvX(tx float64) float64 { return tx }
func (linearScale) Y(y float64) float64     { return y }
func (linearScale) InvY(ty float64) float64 { return ty }

// logScale maps both axes through the natural logarithm for ModeLog.
type logScale struct{}

func (logScale) X(x float64) float64     { return math.Log(x) }
func (logScale) InvX(tx float64) float64 { return math.Exp(tx) }
func (logScale) Y(y float64) float64     { return math.Log(y) }
func (logScale) InvY(ty float64) float64 { return math.Exp(ty) }

// scaleFor returns the transform strategy for the given mode.
func scaleFor(m Mode) scale {
	if m == ModeLog {
		return logScale{}
	}

	return linearScale{}
}
