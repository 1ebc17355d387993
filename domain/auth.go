package domain

import (
	"context"
	"time"
)

const RoleAdmin = "admin"

// OTPChallenge is what RequestOTP returns to the caller. The code itself is
// never part of it; delivery happens through the Notifier.
type OTPChallenge struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStatus is the result of a pure session read. When IsValid is false,
// Reason carries the taxonomy code explaining why.
type SessionStatus struct {
	IsValid bool          `json:"is_valid"`
	Reason  ErrorCode     `json:"reason,omitempty"`
	Session *AdminSession `json:"session,omitempty"`
}

// CleanupReport counts rows purged by a cleanup pass.
type CleanupReport struct {
	ExpiredOTPs     int64 `json:"expired_otps"`
	ExpiredSessions int64 `json:"expired_sessions"`
}

type AuthUseCase interface {
	RequestOTP(ctx context.Context, email string) (*OTPChallenge, error)
	VerifyOTP(ctx context.Context, email, code string) (*AdminSession, error)
	ValidateSession(ctx context.Context, email string) (*SessionStatus, error)
	TouchSession(ctx context.Context, email string) error
	Logout(ctx context.Context, email string) error
	CleanupExpired(ctx context.Context) (*CleanupReport, error)
}

// Notifier delivers a one-time code to its owner. Real email delivery is an
// external collaborator; the default implementation only logs.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}
