package cubegrid

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// BaseDuration is the time of one quarter turn at speed 1.
	BaseDuration = 350 * time.Millisecond
	// HalfTurnMultiplier lengthens half turns: noticeably slower than a
	// quarter turn but well short of twice as long.
	HalfTurnMultiplier = 1.4
	// SolveSpeedFactor shortens every move of a solve sequence.
	SolveSpeedFactor = 0.6
	// HistoryCap bounds the per-instance move history.
	HistoryCap = 500
)

// Option configures Grid and Instance behavior.
type Option func(*config)

type config struct {
	baseDuration time.Duration
	historyCap   int
	easing       Easing
	rng          *rand.Rand
	logger       *log.Logger
	observer     MoveObserver
}

func defaultConfig() *config {
	return &config{
		baseDuration: BaseDuration,
		historyCap:   HistoryCap,
		easing:       FingerFlick,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		logger:       log.New(io.Discard),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBaseDuration sets the duration of a quarter turn at speed 1.
func WithBaseDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.baseDuration = d
		}
	}
}

// WithHistoryCap bounds how many moves each instance remembers for solving.
// The oldest moves are dropped first.
func WithHistoryCap(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.historyCap = n
		}
	}
}

// WithEasing replaces the FingerFlick easing curve.
func WithEasing(e Easing) Option {
	return func(c *config) {
		if e != nil {
			c.easing = e
		}
	}
}

// WithSeed makes move selection and scheduling deterministic.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand supplies the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer for started moves and solves.
func WithObserver(o MoveObserver) Option {
	return func(c *config) {
		c.observer = o
	}
}
