package search

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultExploration is the UCB exploration constant sqrt(2), the standard
// UCT choice absent a reason to tune it.
var defaultExploration = math.Sqrt2

// Option configures a UctPlayer at construction time.
type Option func(p *UctPlayer)

// WithLogger sets the structured logger a UctPlayer reports search
// start/completion and per-root-child summaries through. Absent this
// option, the global zerolog/log logger is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *UctPlayer) {
		p.logger = logger
	}
}

// WithMetrics enables atomic-counter metrics collection for every search
// run by this player.
func WithMetrics() Option {
	return func(p *UctPlayer) {
		p.metrics = NewMetricsCollector()
	}
}

// WithContext supplies a context a caller can cancel to stop a search
// early; workers poll it once per loop iteration alongside the playout
// counter.
func WithContext(ctx context.Context) Option {
	return func(p *UctPlayer) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// WithExploration overrides the UCB exploration constant (default sqrt(2)).
func WithExploration(c float64) Option {
	return func(p *UctPlayer) {
		if c > 0 {
			p.exploration = c
		}
	}
}

func defaultUctPlayer() *UctPlayer {
	return &UctPlayer{
		logger:      log.Logger,
		metrics:     NewNoMetricsCollector(),
		ctx:         context.Background(),
		exploration: defaultExploration,
	}
}
