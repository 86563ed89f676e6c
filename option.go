package gopapilo

import "github.com/costela/gopapilo/internal/native"

type options struct {
	engine native.Engine
	logger Logger
}

type Option func(*options) error

func WithLogger(logger Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = noopLogger{}
		}
		o.logger = logger

		return nil
	}
}

// withEngine replaces the linked papilo library, mostly for tests.
func withEngine(engine native.Engine) Option {
	return func(o *options) error {
		o.engine = engine

		return nil
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		engine: defaultEngine,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.engine == nil {
		return nil, ErrNoEngine
	}

	return o, nil
}
