package domain

import (
	"context"
	"time"
)

// AdminOTP is a one-time admin login code. Multiple live codes may coexist for
// one email; expiry is re-checked at verification time, so lazy cleanup is safe.
type AdminOTP struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
}

func (AdminOTP) TableName() string { return "admin_otps" }

// AdminSession is the single live server-side session for an admin email.
type AdminSession struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Email        string    `gorm:"index;not null" json:"email"`
	SessionID    string    `gorm:"uniqueIndex;not null" json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessAt time.Time `json:"last_access_at"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

type OTPRepository interface {
	Create(ctx context.Context, otp *AdminOTP) error
	// FindValid returns the row matching (email, code) that is still inside its
	// expiry window, or nil when no such row exists.
	FindValid(ctx context.Context, email, code string, now time.Time) (*AdminOTP, error)
	Delete(ctx context.Context, id uint) error
	// IncrementAttempts penalizes every still-valid code for the email at once.
	IncrementAttempts(ctx context.Context, email string, now time.Time) error
	PurgeExpiredForEmail(ctx context.Context, email string, now time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type SessionRepository interface {
	// Replace deletes every existing session for session.Email and inserts the
	// new one in a single transaction, so there is no window in which two
	// sessions are simultaneously valid for one email.
	Replace(ctx context.Context, session *AdminSession) error
	FindActive(ctx context.Context, email string, now time.Time) (*AdminSession, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	DeleteAllForEmail(ctx context.Context, email string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
