// Package options provides the generic functional-option plumbing shared by
// the public segfit packages.
//
// Public packages alias Option[T] to their own option type and build concrete
// options with New (fallible) or NoError (infallible), keeping validation
// inside the option itself.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// funcOption adapts a plain function to the Option interface.
type funcOption[T any] struct {
	fn func(T) error
}

func (o *funcOption[T]) apply(target T) error {
	return o.fn(target)
}

// New wraps a configuration function that may fail into an Option.
func New[T any](fn func(T) error) Option[T] {
	return &funcOption[T]{fn: fn}
}

// NoError wraps a configuration function that cannot fail into an Option.
func NoError[T any](fn func(T)) Option[T] {
	return &funcOption[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply applies opts to target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
