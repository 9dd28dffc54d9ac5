package regression

import (
	"fmt"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
)

// Config holds the configuration of one regression run.
type Config struct {
	// Mode selects the fitting coordinate system.
	Mode Mode
	// Heteroscedastic enables variance estimation; when false every sample
	// gets unit weight.
	Heteroscedastic bool
	// LogSpaceNoise controls, under log mode, whether noise is modeled on
	// ln(y) directly (true) or on y and then mapped into log space (false).
	// Ignored under linear mode.
	LogSpaceNoise bool
	// MinSegmentSize is the minimum number of samples per segment.
	MinSegmentSize int
	// MaxBreakpoints caps the top-down search, bounding worst-case runtime.
	MaxBreakpoints int
	// MinImprovement is the BIC decrease a candidate split must exceed to
	// be committed.
	MinImprovement float64
	// Epsilon floors the weighted RSS before the BIC logarithm and the
	// variance estimates of the noise model.
	Epsilon float64
}

// defaultConfig returns the default configuration: linear mode, unit weights,
// at least 3 samples per segment, at most 32 breakpoints.
func defaultConfig() Config {
	return Config{
		Mode:           ModeLinear,
		LogSpaceNoise:  true,
		MinSegmentSize: 3,
		MaxBreakpoints: 32,
		MinImprovement: 0,
		Epsilon:        1e-12,
	}
}

// Option is a functional option for Compute.
type Option = options.Option[*Config]

// WithMode sets the fitting coordinate mode.
func WithMode(m Mode) Option {
	return options.New(func(cfg *Config) error {
		if !m.valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidMode, m)
		}
		cfg.Mode = m

		return nil
	})
}

// WithLinearMode fits segments in original coordinates.
func WithLinearMode() Option {
	return options.NoError(func(cfg *Config) {
		cfg.Mode = ModeLinear
	})
}

// WithLogMode fits segments in log-log coordinates. Requires x > 0 and y > 0.
func WithLogMode() Option {
	return options.NoError(func(cfg *Config) {
		cfg.Mode = ModeLog
	})
}

// WithHeteroscedastic enables heteroscedastic noise treatment: segment fits
// are weighted by the inverse of the estimated variance at each sample's x.
func WithHeteroscedastic() Option {
	return options.NoError(func(cfg *Config) {
		cfg.Heteroscedastic = true
	})
}

// WithLogSpaceNoise selects, under log mode, whether noise is modeled in
// log-transformed y space (the default) or in original y space.
func WithLogSpaceNoise(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.LogSpaceNoise = enabled
	})
}

// WithMinSegmentSize sets the minimum samples per segment. Must be at least 2.
func WithMinSegmentSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 2 {
			return fmt.Errorf("%w: min segment size %d, need at least 2", errs.ErrInvalidOption, n)
		}
		cfg.MinSegmentSize = n

		return nil
	})
}

// WithMaxBreakpoints caps the number of breakpoints the builder may insert.
func WithMaxBreakpoints(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: max breakpoints %d", errs.ErrInvalidOption, n)
		}
		cfg.MaxBreakpoints = n

		return nil
	})
}

// WithMinImprovement sets the BIC decrease a split must exceed to be accepted.
func WithMinImprovement(v float64) Option {
	return options.New(func(cfg *Config) error {
		if v < 0 {
			return fmt.Errorf("%w: min improvement %v", errs.ErrInvalidOption, v)
		}
		cfg.MinImprovement = v

		return nil
	})
}

// WithEpsilon sets the RSS and variance floor. Must be positive.
func WithEpsilon(eps float64) Option {
	return options.New(func(cfg *Config) error {
		if eps <= 0 {
			return fmt.Errorf("%w: epsilon %v", errs.ErrInvalidOption, eps)
		}
		cfg.Epsilon = eps

		return nil
	})
}
