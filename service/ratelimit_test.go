package service

import (
	"context"
	"testing"
	"time"

	"madrasa/domain"
	"madrasa/repository"
)

func TestConfigForLongestPrefixWins(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), nil)

	cases := []struct {
		endpoint string
		max      int
		window   time.Duration
	}{
		{"/auth/admin/send-otp", 3, 5 * time.Minute},
		{"/auth/admin/verify-otp", 10, 15 * time.Minute},
		{"/auth/admin/logout", 30, time.Minute},
		{"/api/admin/courses", 100, time.Minute},
		{"/ping", 60, time.Minute},
	}
	for _, tc := range cases {
		cfg := svc.ConfigFor(tc.endpoint)
		if cfg.MaxRequests != tc.max || cfg.Window != tc.window {
			t.Errorf("%s: got %d/%v, want %d/%v",
				tc.endpoint, cfg.MaxRequests, cfg.Window, tc.max, tc.window)
		}
	}
}

func TestCheckDeniesPastTheCap(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := svc.Check(ctx, "ip:1.2.3.4", "/auth/admin/send-otp", nil)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if result.Remaining != 3-(i+1) {
			t.Fatalf("request %d: remaining = %d", i+1, result.Remaining)
		}
	}

	result, err := svc.Check(ctx, "ip:1.2.3.4", "/auth/admin/send-otp", nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Allowed {
		t.Fatal("fourth request should be denied")
	}
	if result.Remaining != 0 {
		t.Fatalf("denied request: remaining = %d", result.Remaining)
	}
	if result.RetryAfter < 1 || result.RetryAfter > 300 {
		t.Fatalf("retry-after = %d, want within (0, 300]", result.RetryAfter)
	}

	// The denial also records a violation toward the penalty.
	delay, err := svc.ProgressiveDelay(ctx, "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if delay != time.Second {
		t.Fatalf("one violation should earn the base delay, got %v", delay)
	}
}

func TestCheckIdentifiersAreIsolated(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Check(ctx, "ip:1.1.1.1", "/auth/admin/send-otp", nil)
	}
	result, err := svc.Check(ctx, "ip:2.2.2.2", "/auth/admin/send-otp", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("a different identifier must have its own window")
	}
}

func TestCheckOverrideConfig(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), nil)
	ctx := context.Background()

	override := &domain.RateLimitConfig{MaxRequests: 1, Window: time.Minute}
	if result, _ := svc.Check(ctx, "ip:1.2.3.4", "/ping", override); !result.Allowed {
		t.Fatal("first request under override should pass")
	}
	if result, _ := svc.Check(ctx, "ip:1.2.3.4", "/ping", override); result.Allowed {
		t.Fatal("override cap of one should deny the second request")
	}
}

func TestRecordSuccessRefundsOnlyConfiguredEndpoints(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), nil)
	ctx := context.Background()

	// verify-otp counts only failures: a success refunds its slot, so the
	// window never fills under repeated successful verifications.
	for i := 0; i < 25; i++ {
		result, err := svc.Check(ctx, "ip:1.2.3.4", "/auth/admin/verify-otp", nil)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Allowed {
			t.Fatalf("verification %d denied despite refunds", i+1)
		}
		if err := svc.RecordSuccess(ctx, "ip:1.2.3.4", "/auth/admin/verify-otp"); err != nil {
			t.Fatal(err)
		}
	}

	// send-otp has no skip flag, so successes still consume the window.
	for i := 0; i < 3; i++ {
		svc.Check(ctx, "ip:1.2.3.4", "/auth/admin/send-otp", nil)
		svc.RecordSuccess(ctx, "ip:1.2.3.4", "/auth/admin/send-otp")
	}
	if result, _ := svc.Check(ctx, "ip:1.2.3.4", "/auth/admin/send-otp", nil); result.Allowed {
		t.Fatal("send-otp successes must not be refunded")
	}
}

type scriptedStore struct {
	domain.RateLimitStore
	violations domain.ViolationState
}

func (s *scriptedStore) Violations(context.Context, string) (domain.ViolationState, error) {
	return s.violations, nil
}

func TestProgressiveDelayGrowth(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &scriptedStore{}
	svc := NewRateLimitingService(store, nil)
	svc.now = func() time.Time { return base }

	cases := []struct {
		count int
		want  time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{5, 16 * time.Second},
		{9, 256 * time.Second},
		{10, 5 * time.Minute},
		{35, 5 * time.Minute},
		{50, 5 * time.Minute},
		{200, 5 * time.Minute},
	}
	for _, tc := range cases {
		store.violations = domain.ViolationState{Count: tc.count, LastViolation: base}
		got, err := svc.ProgressiveDelay(context.Background(), "ip:1.2.3.4")
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("count %d: delay = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestProgressiveDelayHoldsForHeavyViolators(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &scriptedStore{violations: domain.ViolationState{Count: 40, LastViolation: base}}
	svc := NewRateLimitingService(store, nil)
	svc.now = func() time.Time { return base.Add(time.Second) }

	delay, err := svc.ProgressiveDelay(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if delay != 5*time.Minute {
		t.Fatalf("delay = %v, want the 5m cap", delay)
	}

	inDelay, remaining, err := svc.InProgressiveDelay(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if !inDelay {
		t.Fatal("a heavy violator one second into the penalty must still be held")
	}
	if remaining != 5*time.Minute-time.Second {
		t.Fatalf("remaining = %v", remaining)
	}
}

func TestProgressiveDelayResetsAfterQuietHour(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &scriptedStore{violations: domain.ViolationState{Count: 8, LastViolation: base}}
	svc := NewRateLimitingService(store, nil)
	svc.now = func() time.Time { return base.Add(time.Hour + time.Second) }

	delay, err := svc.ProgressiveDelay(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if delay != 0 {
		t.Fatalf("delay after a quiet hour = %v, want 0", delay)
	}
}

func TestInProgressiveDelayRemaining(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &scriptedStore{violations: domain.ViolationState{Count: 3, LastViolation: base}}
	svc := NewRateLimitingService(store, nil)

	// One second into a four-second penalty.
	svc.now = func() time.Time { return base.Add(time.Second) }
	inDelay, remaining, err := svc.InProgressiveDelay(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if !inDelay || remaining != 3*time.Second {
		t.Fatalf("got inDelay=%v remaining=%v, want true 3s", inDelay, remaining)
	}

	// Penalty fully served.
	svc.now = func() time.Time { return base.Add(5 * time.Second) }
	inDelay, remaining, err = svc.InProgressiveDelay(context.Background(), "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if inDelay || remaining != 0 {
		t.Fatalf("got inDelay=%v remaining=%v, want false 0", inDelay, remaining)
	}
}

func TestIsWhitelisted(t *testing.T) {
	svc := NewRateLimitingService(repository.NewMemoryRateLimitStore(), []string{"10.0.0.1", " 10.0.0.2 ", ""})

	if !svc.IsWhitelisted("10.0.0.1") {
		t.Fatal("10.0.0.1 should be whitelisted")
	}
	if !svc.IsWhitelisted("10.0.0.2") {
		t.Fatal("whitelist entries should be trimmed")
	}
	if svc.IsWhitelisted("10.0.0.3") {
		t.Fatal("10.0.0.3 should not be whitelisted")
	}
	if svc.IsWhitelisted("") {
		t.Fatal("the empty string should never be whitelisted")
	}
}
