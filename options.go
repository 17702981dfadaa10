package stage

import (
	"log/slog"
	"math"
	"time"
)

// Defaults used when no option overrides them.
const (
	// DefaultDebounce is the quiet period before a stage job starts.
	DefaultDebounce = 200 * time.Millisecond

	// DefaultBudget is the size budget in pixels used when the host has no
	// display size.
	DefaultBudget = 2500

	// BudgetFactor relates the size budget to the larger display side.
	BudgetFactor = 1.4
)

// Option configures a Cache during creation.
//
// Example:
//
//	c := stage.NewCache(src,
//	    stage.WithDebounce(100*time.Millisecond),
//	    stage.WithRepaint(canvas.MarkDirty),
//	)
type Option func(*config)

type config struct {
	debounce      time.Duration
	maxWait       time.Duration
	hysteresis    float64
	logger        *slog.Logger
	repaint       func()
	budgetFactor  float64
	defaultBudget int
	variants      int
}

func defaultConfig() config {
	return config{
		debounce:      DefaultDebounce,
		budgetFactor:  BudgetFactor,
		defaultBudget: DefaultBudget,
		variants:      2,
	}
}

// log returns the configured logger, falling back to the package logger.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// WithDebounce sets the quiet period before a stage job starts. Zero starts
// jobs synchronously inside Validate.
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		c.debounce = max(d, 0)
	}
}

// WithMaxWait bounds how long a burst of requests can postpone a job.
// By default there is no bound: continuous navigation keeps postponing the
// start until the view settles. Zero disables the bound.
func WithMaxWait(d time.Duration) Option {
	return func(c *config) {
		c.maxWait = max(d, 0)
	}
}

// WithHysteresis lets the viewport leave the cached region by up to margin
// local units before a new region is requested. The stage is still only
// composited while it covers the viewport.
func WithHysteresis(margin float64) Option {
	return func(c *config) {
		if margin > 0 && !math.IsInf(margin, 0) {
			c.hysteresis = margin
		}
	}
}

// WithLogger sets a logger for this cache instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRepaint sets the hook called when a job finishes and the host should
// render again. The hook may run on any goroutine and must not block.
func WithRepaint(fn func()) Option {
	return func(c *config) {
		c.repaint = fn
	}
}

// WithBudgetFactor sets the ratio between the size budget and the larger
// display side. Non-positive values are ignored.
func WithBudgetFactor(f float64) Option {
	return func(c *config) {
		if f > 0 && !math.IsInf(f, 0) {
			c.budgetFactor = f
		}
	}
}

// WithDefaultBudget sets the budget used when no display size is known.
// Non-positive values are ignored.
func WithDefaultBudget(px int) Option {
	return func(c *config) {
		if px > 0 {
			c.defaultBudget = px
		}
	}
}

// WithRotationVariants sets how many rotated copies of the stage are kept
// for compositing at different right angles. The minimum is 1.
func WithRotationVariants(n int) Option {
	return func(c *config) {
		c.variants = max(n, 1)
	}
}
