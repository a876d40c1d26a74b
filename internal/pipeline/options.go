package pipeline

import (
	"log/slog"
	"time"
)

// Option configures an Orchestrator during creation.
type Option func(*Orchestrator)

// WithCodec replaces the raster codec. Hosts with their own decoder and
// encoder plug them in here.
func WithCodec(c Codec) Option {
	return func(o *Orchestrator) {
		o.codec = c
	}
}

// WithGenerator replaces the remote image generator. When set it is used
// regardless of the API key in Config; ForceLocal still disables it.
func WithGenerator(g Generator) Option {
	return func(o *Orchestrator) {
		o.gen = g
		o.genFixed = true
	}
}

// WithLogger sets a logger for this orchestrator only.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithClock sets the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}
