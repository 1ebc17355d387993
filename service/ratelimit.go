package service

import (
	"context"
	"math"
	"strings"
	"time"

	"madrasa/domain"

	"github.com/rs/zerolog/log"
)

const (
	progressiveBaseDelay  = time.Second
	progressiveMultiplier = 2.0
	progressiveMaxDelay   = 5 * time.Minute
	violationResetAfter   = time.Hour
	sweepInterval         = 5 * time.Minute
)

// endpointRule binds a route prefix to its window config; resolution picks the
// longest matching prefix.
type endpointRule struct {
	Prefix string
	Config domain.RateLimitConfig
}

var defaultRules = []endpointRule{
	{"/auth/admin/send-otp", domain.RateLimitConfig{MaxRequests: 3, Window: 5 * time.Minute}},
	{"/auth/admin/verify-otp", domain.RateLimitConfig{MaxRequests: 10, Window: 15 * time.Minute, SkipSuccessfulRequests: true}},
	{"/auth/admin/", domain.RateLimitConfig{MaxRequests: 30, Window: time.Minute}},
	{"/api/", domain.RateLimitConfig{MaxRequests: 100, Window: time.Minute}},
}

var defaultRule = domain.RateLimitConfig{MaxRequests: 60, Window: time.Minute}

type RateLimitingService struct {
	store     domain.RateLimitStore
	rules     []endpointRule
	whitelist map[string]struct{}

	now func() time.Time
}

// NewRateLimitingService builds the limiter. whitelistIPs are exempt from
// every check.
func NewRateLimitingService(store domain.RateLimitStore, whitelistIPs []string) *RateLimitingService {
	whitelist := make(map[string]struct{}, len(whitelistIPs))
	for _, ip := range whitelistIPs {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			whitelist[ip] = struct{}{}
		}
	}
	return &RateLimitingService{
		store:     store,
		rules:     defaultRules,
		whitelist: whitelist,
		now:       time.Now,
	}
}

// ConfigFor resolves the window rule for an endpoint by longest prefix match.
func (s *RateLimitingService) ConfigFor(endpoint string) domain.RateLimitConfig {
	best := defaultRule
	bestLen := -1
	for _, rule := range s.rules {
		if strings.HasPrefix(endpoint, rule.Prefix) && len(rule.Prefix) > bestLen {
			best = rule.Config
			bestLen = len(rule.Prefix)
		}
	}
	return best
}

// IsWhitelisted reports whether the bare IP is exempt from rate limiting.
func (s *RateLimitingService) IsWhitelisted(ip string) bool {
	_, ok := s.whitelist[ip]
	return ok
}

func limitKey(identifier, endpoint string) string {
	return identifier + ":" + endpoint
}

// Check applies one request against the endpoint's fixed window. A denial also
// records a violation for the progressive-delay penalty.
func (s *RateLimitingService) Check(ctx context.Context, identifier, endpoint string, override *domain.RateLimitConfig) (domain.RateLimitResult, error) {
	cfg := s.ConfigFor(endpoint)
	if override != nil {
		cfg = *override
	}

	state, allowed, err := s.store.Hit(ctx, limitKey(identifier, endpoint), cfg.MaxRequests, cfg.Window)
	if err != nil {
		return domain.RateLimitResult{}, err
	}

	result := domain.RateLimitResult{
		Allowed:   allowed,
		Limit:     cfg.MaxRequests,
		Remaining: cfg.MaxRequests - state.Count,
		ResetTime: state.ResetTime,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}

	if !allowed {
		result.RetryAfter = int(math.Ceil(state.ResetTime.Sub(s.now()).Seconds()))
		if result.RetryAfter < 1 {
			result.RetryAfter = 1
		}
		if _, err := s.store.RecordViolation(ctx, identifier, violationResetAfter); err != nil {
			log.Warn().Err(err).Str("identifier", identifier).Msg("violation bookkeeping failed")
		}
	}
	return result, nil
}

// RecordSuccess refunds the request's window cost when the endpoint is
// configured to count only failures.
func (s *RateLimitingService) RecordSuccess(ctx context.Context, identifier, endpoint string) error {
	if !s.ConfigFor(endpoint).SkipSuccessfulRequests {
		return nil
	}
	return s.store.Refund(ctx, limitKey(identifier, endpoint))
}

// RecordFailure refunds the cost when the endpoint counts only successes.
func (s *RateLimitingService) RecordFailure(ctx context.Context, identifier, endpoint string) error {
	if !s.ConfigFor(endpoint).SkipFailedRequests {
		return nil
	}
	return s.store.Refund(ctx, limitKey(identifier, endpoint))
}

// ProgressiveDelay computes the exponential backoff earned by repeated
// violations: base * multiplier^(count-1), capped, zero once the last
// violation is older than the reset window.
func (s *RateLimitingService) ProgressiveDelay(ctx context.Context, identifier string) (time.Duration, error) {
	state, err := s.store.Violations(ctx, identifier)
	if err != nil {
		return 0, err
	}
	if state.Count == 0 || s.now().Sub(state.LastViolation) > violationResetAfter {
		return 0, nil
	}

	// Compare in float space: the product overflows int64 near count 35, and
	// an out-of-range conversion would turn the penalty negative.
	delay := float64(progressiveBaseDelay) * math.Pow(progressiveMultiplier, float64(state.Count-1))
	if delay > float64(progressiveMaxDelay) {
		return progressiveMaxDelay, nil
	}
	return time.Duration(delay), nil
}

// InProgressiveDelay reports whether the identifier is still inside its
// computed delay window, and how long remains.
func (s *RateLimitingService) InProgressiveDelay(ctx context.Context, identifier string) (bool, time.Duration, error) {
	state, err := s.store.Violations(ctx, identifier)
	if err != nil {
		return false, 0, err
	}
	if state.Count == 0 {
		return false, 0, nil
	}

	delay, err := s.ProgressiveDelay(ctx, identifier)
	if err != nil || delay == 0 {
		return false, 0, err
	}

	elapsed := s.now().Sub(state.LastViolation)
	if elapsed >= delay {
		return false, 0, nil
	}
	return true, delay - elapsed, nil
}

// StartSweepLoop runs the store's hygiene sweep every five minutes until ctx
// is done. Lookups reset lazily regardless; this bounds memory.
func (s *RateLimitingService) StartSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed, err := s.store.Sweep(ctx); err != nil {
					log.Warn().Err(err).Msg("rate limit sweep failed")
				} else if removed > 0 {
					log.Debug().Int("removed", removed).Msg("rate limit records swept")
				}
			}
		}
	}()
}
