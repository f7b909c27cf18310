package cubeview

import "time"

// Option configures cubeview components. The same option set is shared
// by NewDecoder, NewEngine and Dial; each reads the fields it cares about.
type Option func(*config)

type config struct {
	moveDuration time.Duration
	strategies   []Strategy
	decodeWarn   func(payload []byte)
	moveHistory  bool
}

func defaultConfig() *config {
	return &config{
		moveDuration: 200 * time.Millisecond,
		moveHistory:  true,
	}
}

// WithMoveDuration sets how long one animated face turn takes.
// The default is 200ms.
func WithMoveDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.moveDuration = d
		}
	}
}

// WithStrategies replaces the decoder's strategy chain. Strategies are
// tried in order; the first fully-valid non-empty result wins.
func WithStrategies(strategies []Strategy) Option {
	return func(c *config) {
		c.strategies = strategies
	}
}

// WithDecodeWarning sets a callback fired when a payload matches no
// decode strategy. The payload is dropped either way.
func WithDecodeWarning(cb func(payload []byte)) Option {
	return func(c *config) {
		c.decodeWarn = cb
	}
}

// WithMoveHistory enables or disables move history tracking on a
// session. Enabled by default; disable for long sessions to bound memory.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
