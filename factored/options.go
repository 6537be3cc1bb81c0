// SPDX-License-Identifier: MIT

package factored

import (
	"github.com/katalvlaran/normat/backend"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures Build.
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	backendOps []backend.Option
}

// WithLogger sets the logger for operation traces and, when the handle is not
// already bound, for the backend adapter.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
		o.backendOps = append(o.backendOps, backend.WithLogger(l))
	}
}

// WithBackendOptions forwards options to backend.Bind.
func WithBackendOptions(opts ...backend.Option) Option {
	return func(o *options) { o.backendOps = append(o.backendOps, opts...) }
}

func gatherOptions(opts ...Option) options {
	o := options{logger: log.Logger}
	for _, set := range opts {
		set(&o)
	}

	return o
}
