package compressor

import (
	"math"
	"time"
)

const (
	// MaxDepthLimit is the deepest a tree may be configured to grow.
	MaxDepthLimit = 8
	// DefaultMaxDepth is the default depth at which subdivision stops.
	DefaultMaxDepth = 8
	// DefaultDetailThreshold is the default detail score at or below which a region
	// is considered uniform.
	DefaultDetailThreshold = 15.0
)

// Config controls how a compressing tree is built.
type Config struct {
	MaxDepth        int     `json:"max_depth"`
	DetailThreshold float64 `json:"detail_threshold"`
	// Concurrency caps the goroutines used while building. Zero uses utils.ParallelFactor.
	Concurrency int `json:"concurrency,omitempty"`
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        DefaultMaxDepth,
		DetailThreshold: DefaultDetailThreshold,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg Config) Validate() error {
	if cfg.MaxDepth < 0 || cfg.MaxDepth > MaxDepthLimit {
		return NewOutOfRangeConfigError("max depth", cfg.MaxDepth, 0, MaxDepthLimit)
	}
	if cfg.DetailThreshold < 0 || math.IsNaN(cfg.DetailThreshold) || math.IsInf(cfg.DetailThreshold, 0) {
		return NewOutOfRangeConfigError("detail threshold", cfg.DetailThreshold, 0, "+Inf")
	}
	if cfg.Concurrency < 0 {
		return NewOutOfRangeConfigError("concurrency", cfg.Concurrency, 0, "+Inf")
	}
	return nil
}

// ValidateDepth checks that depth can be asked of a tree built with cfg. It is meant to
// run before any build work starts.
func (cfg Config) ValidateDepth(depth int) error {
	if depth < 0 || depth > cfg.MaxDepth {
		return NewOutOfRangeConfigError("depth", depth, 0, cfg.MaxDepth)
	}
	return nil
}

// GIFOptions control animated output.
type GIFOptions struct {
	// Delay is how long each frame is shown.
	Delay time.Duration
	// LoopCount is the number of times to loop; 0 loops forever.
	LoopCount int
	ShowLines bool
}

// DefaultGIFOptions shows each frame for a second and loops forever.
func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Delay: time.Second}
}
