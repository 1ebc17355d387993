package repository

import (
	"context"
	"sync"
	"time"

	"madrasa/domain"
)

// memoryRateLimitStore keeps window counters in process-local maps. Limits do
// not survive a restart and are not shared across instances; deployments that
// need shared state use the Redis store instead.
type memoryRateLimitStore struct {
	mu         sync.Mutex
	windows    map[string]*domain.WindowState
	violations map[string]*domain.ViolationState
	// sweep thresholds, mirrored from the service defaults
	windowGrace    time.Duration
	violationReset time.Duration

	now func() time.Time
}

func NewMemoryRateLimitStore() domain.RateLimitStore {
	return &memoryRateLimitStore{
		windows:        make(map[string]*domain.WindowState),
		violations:     make(map[string]*domain.ViolationState),
		windowGrace:    time.Minute,
		violationReset: time.Hour,
		now:            time.Now,
	}
}

func (s *memoryRateLimitStore) Hit(_ context.Context, key string, max int, window time.Duration) (domain.WindowState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.windows[key]
	if !ok || now.After(rec.ResetTime) {
		rec = &domain.WindowState{
			Count:        1,
			ResetTime:    now.Add(window),
			FirstRequest: now,
			LastRequest:  now,
		}
		s.windows[key] = rec
		return *rec, true, nil
	}

	rec.LastRequest = now
	if rec.Count < max {
		rec.Count++
		return *rec, true, nil
	}

	// At the cap: the count stays put, only the violation tally moves.
	rec.Violations++
	return *rec, false, nil
}

func (s *memoryRateLimitStore) Refund(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.windows[key]; ok && rec.Count > 0 {
		rec.Count--
	}
	return nil
}

func (s *memoryRateLimitStore) RecordViolation(_ context.Context, identifier string, resetAfter time.Duration) (domain.ViolationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.violations[identifier]
	if !ok || now.Sub(rec.LastViolation) > resetAfter {
		rec = &domain.ViolationState{}
		s.violations[identifier] = rec
	}
	rec.Count++
	rec.LastViolation = now
	return *rec, nil
}

func (s *memoryRateLimitStore) Violations(_ context.Context, identifier string) (domain.ViolationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.violations[identifier]
	if !ok {
		return domain.ViolationState{}, nil
	}
	return *rec, nil
}

// Sweep drops windows more than a minute past their reset and violation
// records past the reset threshold. Lookups reset lazily either way; this only
// keeps the maps from growing with every identifier ever seen.
func (s *memoryRateLimitStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, rec := range s.windows {
		if now.Sub(rec.ResetTime) > s.windowGrace {
			delete(s.windows, key)
			removed++
		}
	}
	for id, rec := range s.violations {
		if now.Sub(rec.LastViolation) > s.violationReset {
			delete(s.violations, id)
			removed++
		}
	}
	return removed, nil
}
