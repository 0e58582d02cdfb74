package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

const (
	// DefaultPadding separates generations, siblings and partners while
	// people are being placed.
	DefaultPadding = 150.0

	// DefaultCouplePadding is the distance between partners after the final
	// tightening pass.
	DefaultCouplePadding = 100.0
)

// Option configures an [Engine].
type Option func(*config)

type config struct {
	padding       float64
	couplePadding float64
	stepLimit     int
	limited       bool
	logger        *log.Logger
}

func defaultConfig() config {
	return config{
		padding:       DefaultPadding,
		couplePadding: DefaultCouplePadding,
		logger:        log.New(io.Discard),
	}
}

// WithStepLimit stops placement after n people (in breadth-first order) have
// been positioned. Everyone after that stays unpositioned. Negative values
// are treated as zero.
func WithStepLimit(n int) Option {
	return func(c *config) {
		c.stepLimit = max(n, 0)
		c.limited = true
	}
}

// WithLogger attaches a debug logger that traces every placement and repair.
// Logging never changes the outcome of a pass.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPadding overrides the placement and couple spacing. Non-positive
// values keep the defaults, and couple padding never exceeds padding.
func WithPadding(padding, couplePadding float64) Option {
	return func(c *config) {
		if padding > 0 {
			c.padding = padding
		}
		if couplePadding > 0 {
			c.couplePadding = couplePadding
		}
		c.couplePadding = min(c.couplePadding, c.padding)
	}
}
