package loader

import (
	"io"

	"github.com/statelog-io/dictstream/pkg/log"
)

// Option configures optional behavior of a Loader.
type Option func(*Loader)

// WithOutput directs snapshots to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Loader) {
		l.out = w
	}
}

// WithJSON renders snapshots as JSON objects instead of the default
// rendering.
func WithJSON() Option {
	return func(l *Loader) {
		l.json = true
	}
}

// WithDeepMerge merges fragments with deep update semantics instead of the
// default shallow last-write-wins union.
func WithDeepMerge() Option {
	return func(l *Loader) {
		l.deep = true
	}
}

// WithLogger sets a logger for diagnostics. Snapshots are data and never go
// through the logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}
