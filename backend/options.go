// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures an Adapter at bind time.
type Option func(*adapterOptions)

type adapterOptions struct {
	logger zerolog.Logger
}

// WithLogger routes adapter diagnostics to l instead of the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *adapterOptions) { o.logger = l }
}

// gatherOptions resolves opts on top of the defaults (last-writer-wins).
func gatherOptions(opts ...Option) adapterOptions {
	o := adapterOptions{logger: log.Logger}
	for _, set := range opts {
		set(&o)
	}

	return o
}
