package domain

import (
	"context"
	"time"
)

// RateLimitConfig describes one fixed window rule.
type RateLimitConfig struct {
	MaxRequests            int
	Window                 time.Duration
	SkipSuccessfulRequests bool
	SkipFailedRequests     bool
}

// RateLimitResult is the outcome of a single window check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetTime  time.Time `json:"reset_time"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when denied
}

// WindowState is the stored fixed-window record for one identifier:endpoint key.
type WindowState struct {
	Count        int
	ResetTime    time.Time
	FirstRequest time.Time
	LastRequest  time.Time
	Violations   int
}

// ViolationState drives the progressive-delay penalty for one identifier.
type ViolationState struct {
	Count         int
	LastViolation time.Time
}

// RateLimitStore abstracts where window counters live, so a single-process
// in-memory map and a shared Redis store are interchangeable. Hit must apply
// the fixed-window rules atomically: create or lazily reset the window, never
// increment past max, and bump the window's violation counter on denial.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, max int, window time.Duration) (WindowState, bool, error)
	// Refund undoes one counted request (floor at zero).
	Refund(ctx context.Context, key string) error
	RecordViolation(ctx context.Context, identifier string, resetAfter time.Duration) (ViolationState, error)
	Violations(ctx context.Context, identifier string) (ViolationState, error)
	// Sweep removes stale windows and violation records. Stores whose backend
	// expires keys on its own may make this a no-op.
	Sweep(ctx context.Context) (int, error)
}
