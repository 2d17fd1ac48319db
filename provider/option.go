package provider

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/idprovider/internal/idgen"
)

// Option customises a Provider.
type Option func(p *Provider)

// WithSource sets the random source used once the reserved pool is empty.
func WithSource(source idgen.Source) Option {
	return func(p *Provider) {
		if source != nil {
			p.source = source
		}
	}
}

// WithMaxRetries caps the number of regenerations after a colliding draw.
// Zero (the default) leaves the loop unbounded.
func WithMaxRetries(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.maxRetries = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}
