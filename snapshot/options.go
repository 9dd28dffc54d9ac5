package snapshot

import (
	"fmt"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
)

// encodeConfig holds the encoding parameters assembled from options.
type encodeConfig struct {
	compression CompressionType
}

func defaultEncodeConfig() *encodeConfig {
	return &encodeConfig{compression: CompressionNone}
}

// Option configures snapshot encoding.
type Option = options.Option[*encodeConfig]

func applyOptions(cfg *encodeConfig, opts ...Option) error {
	return options.Apply(cfg, opts...)
}

// WithCompression selects the payload compression. The default is
// CompressionNone.
func WithCompression(c CompressionType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if !c.valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, c)
		}
		cfg.compression = c

		return nil
	})
}
