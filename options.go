package zcurve

import (
	"math/rand"

	"github.com/hupe1980/zcurve/compresslen"
	"github.com/hupe1980/zcurve/quantization"
)

// DefaultSurrogates is the number of shuffled surrogates averaged per k.
const DefaultSurrogates = 5

type options struct {
	backend     compresslen.Backend
	surrogates  int
	parallelism int
	logger      *Logger
	rng         *rand.Rand
	vqOpts      []quantization.Option
}

// Option configures sweep and curve assembly behavior.
type Option func(*options)

// WithBackend selects the compression backend used for the normalized
// compression metric. Defaults to deflate.
func WithBackend(b compresslen.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithSurrogates sets how many shuffled surrogates are averaged per k.
// Only CompressionSurrogateCurve consults this. Defaults to
// DefaultSurrogates.
func WithSurrogates(n int) Option {
	return func(o *options) {
		o.surrogates = n
	}
}

// WithParallelism bounds how many per-k quantization runs execute
// concurrently. Values below 1 mean GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger sets the logger. Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRand sets the random source for surrogate permutations and, unless
// overridden per run, centroid seeding. Inject a seeded source for
// reproducible curves.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithVQOptions passes options through to every per-k quantization run.
func WithVQOptions(opts ...quantization.Option) Option {
	return func(o *options) {
		o.vqOpts = append(o.vqOpts, opts...)
	}
}

func applyOptions(opts []Option) options {
	o := options{
		backend:    compresslen.BackendDeflate,
		surrogates: DefaultSurrogates,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(rand.Int63())) // nolint gosec
	}

	return o
}
