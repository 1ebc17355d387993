package service

import (
	"context"
	"strings"
	"time"

	"madrasa/domain"
	"madrasa/utils"

	"github.com/rs/zerolog/log"
)

const (
	otpTTL         = 15 * time.Minute
	sessionTTL     = 24 * time.Hour
	maxOTPAttempts = 5
)

type authService struct {
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	notifier    domain.Notifier
	allowlist   map[string]struct{}

	now func() time.Time
}

// NewAuthService wires the OTP engine. allowedEmails is the single
// authoritative admin allow-list, injected from config.
func NewAuthService(
	otpRepo domain.OTPRepository,
	sessionRepo domain.SessionRepository,
	notifier domain.Notifier,
	allowedEmails []string,
) domain.AuthUseCase {
	allowlist := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		allowlist[utils.NormalizeEmail(email)] = struct{}{}
	}
	return &authService{
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
		allowlist:   allowlist,
		now:         time.Now,
	}
}

func (s *authService) isAllowed(email string) bool {
	_, ok := s.allowlist[email]
	return ok
}

// RequestOTP issues a fresh code for an allow-listed email. Still-valid codes
// for the same email are left alone; only expired ones are swept. The code is
// handed to the notifier and never returned to the caller.
func (s *authService) RequestOTP(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	email = utils.NormalizeEmail(email)
	if !s.isAllowed(email) {
		return nil, domain.NewAuthError(domain.ErrUnauthorizedEmail, nil)
	}

	now := s.now()
	if err := s.otpRepo.PurgeExpiredForEmail(ctx, email, now); err != nil {
		// Best-effort GC; expiry is enforced again at verification time.
		log.Warn().Err(err).Str("email", email).Msg("expired OTP sweep failed")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrInternal, nil)
	}

	otp := &domain.AdminOTP{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}

	if err := s.notifier.SendOTP(ctx, email, code, otp.ExpiresAt); err != nil {
		log.Error().Err(err).Str("email", email).Msg("OTP delivery failed")
		return nil, domain.NewAuthError(domain.ErrServiceUnavailable, nil)
	}

	return &domain.OTPChallenge{Email: email, ExpiresAt: otp.ExpiresAt}, nil
}

// VerifyOTP consumes a code and replaces the admin's session. A wrong code
// penalizes every still-valid code for the email; a code whose shared attempt
// counter has reached the cap is no longer verifiable even when correct.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (*domain.AdminSession, error) {
	email = utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if !s.isAllowed(email) {
		return nil, domain.NewAuthError(domain.ErrUnauthorizedEmail, nil)
	}

	now := s.now()
	otp, err := s.otpRepo.FindValid(ctx, email, code, now)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}
	if otp == nil {
		if err := s.otpRepo.IncrementAttempts(ctx, email, now); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("attempt bookkeeping failed")
		}
		return nil, domain.NewAuthError(domain.ErrOTPInvalid, nil)
	}

	if otp.Attempts >= maxOTPAttempts {
		return nil, domain.NewAuthError(domain.ErrTooManyAttempts, map[string]any{
			"remainingAttempts": 0,
		})
	}

	// Single use: the row dies before any session is minted.
	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}

	session := &domain.AdminSession{
		Email:        email,
		SessionID:    utils.NewSessionID(email, now.UnixMilli()),
		CreatedAt:    now,
		LastAccessAt: now,
		ExpiresAt:    now.Add(sessionTTL),
	}
	if err := s.sessionRepo.Replace(ctx, session); err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}

	log.Info().Str("email", email).Str("session_id", session.SessionID).Msg("admin session created")
	return session, nil
}

// ValidateSession is a pure read; callers refresh last access separately.
func (s *authService) ValidateSession(ctx context.Context, email string) (*domain.SessionStatus, error) {
	email = utils.NormalizeEmail(email)
	if !s.isAllowed(email) {
		return &domain.SessionStatus{IsValid: false, Reason: domain.ErrUnauthorizedEmail}, nil
	}

	session, err := s.sessionRepo.FindActive(ctx, email, s.now())
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}
	if session == nil {
		return &domain.SessionStatus{IsValid: false, Reason: domain.ErrNoActiveSession}, nil
	}
	return &domain.SessionStatus{IsValid: true, Session: session}, nil
}

func (s *authService) TouchSession(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	now := s.now()

	session, err := s.sessionRepo.FindActive(ctx, email, now)
	if err != nil {
		return domain.NewAuthError(domain.ErrDatabase, nil)
	}
	if session == nil {
		return domain.NewAuthError(domain.ErrNoActiveSession, nil)
	}
	if err := s.sessionRepo.Touch(ctx, session.SessionID, now); err != nil {
		return domain.NewAuthError(domain.ErrDatabase, nil)
	}
	return nil
}

// Logout deletes every session for the email. Succeeds even when none exist.
func (s *authService) Logout(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if err := s.sessionRepo.DeleteAllForEmail(ctx, email); err != nil {
		return domain.NewAuthError(domain.ErrDatabase, nil)
	}
	return nil
}

// CleanupExpired is storage hygiene only; verification and validation both
// re-check expiry on their own.
func (s *authService) CleanupExpired(ctx context.Context) (*domain.CleanupReport, error) {
	now := s.now()

	otps, err := s.otpRepo.PurgeExpired(ctx, now)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}
	sessions, err := s.sessionRepo.PurgeExpired(ctx, now)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrDatabase, nil)
	}

	if otps > 0 || sessions > 0 {
		log.Info().Int64("otps", otps).Int64("sessions", sessions).Msg("expired auth rows purged")
	}
	return &domain.CleanupReport{ExpiredOTPs: otps, ExpiredSessions: sessions}, nil
}

// StartCleanupLoop purges expired rows on a fixed tick until ctx is done.
func StartCleanupLoop(ctx context.Context, auth domain.AuthUseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := auth.CleanupExpired(ctx); err != nil {
					log.Warn().Err(err).Msg("auth cleanup pass failed")
				}
			}
		}
	}()
}
