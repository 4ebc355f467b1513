package batch

import (
	"log/slog"
	"time"
)

type Option func(*Processor)

func WithMaxRetries(maxRetries int) Option {
	return func(p *Processor) {
		if maxRetries >= 0 {
			p.maxRetries = maxRetries
		}
	}
}

func WithExtensions(extensions ...string) Option {
	return func(p *Processor) {
		if len(extensions) > 0 {
			p.extensions = extensions
		}
	}
}

// WithBackoffUnit overrides the base unit of the exponential backoff.
// The wait before attempt n+1 is 2^(n-1) units.
func WithBackoffUnit(unit time.Duration) Option {
	return func(p *Processor) {
		if unit > 0 {
			p.backoffUnit = unit
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}
