package chainmap

import "go.uber.org/zap"

type options struct {
	logger   *zap.Logger
	capacity int
}

// Option configures a Table at construction time.
type Option func(*options)

// WithLogger sets the logger that receives resize events. Tables log
// nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCapacity pre-sizes the bucket array so that n items fit without a
// resize.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
