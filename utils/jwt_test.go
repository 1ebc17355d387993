package utils

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	m := NewSessionTokenManager(testSecret, time.Hour)

	token, err := m.GenerateToken("admin@allowed.com", "admin", "session_x")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.VerifyToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Email != "admin@allowed.com" || claims.Role != "admin" || claims.SessionID != "session_x" {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.IsAdminSession() {
		t.Fatal("round-tripped token should be an admin session")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	m := NewSessionTokenManager(testSecret, -time.Minute)
	token, err := m.GenerateToken("admin@allowed.com", "admin", "session_x")
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.VerifyToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	m := NewSessionTokenManager(testSecret, time.Hour)
	other := NewSessionTokenManager("a-completely-different-secret-value!", time.Hour)

	token, err := other.GenerateToken("admin@allowed.com", "admin", "session_x")
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.VerifyToken(token)
	if err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatal("signature failure must not read as expiry")
	}
}

func TestDecodeClaimsAcceptsExpiredToken(t *testing.T) {
	expired := NewSessionTokenManager(testSecret, -time.Minute)
	token, err := expired.GenerateToken("admin@allowed.com", "admin", "session_x")
	if err != nil {
		t.Fatal(err)
	}

	m := NewSessionTokenManager(testSecret, time.Hour)
	claims, err := m.DecodeClaims(token)
	if err != nil {
		t.Fatalf("expired token should still decode: %v", err)
	}
	if claims.Email != "admin@allowed.com" || claims.SessionID != "session_x" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestDecodeClaimsStillChecksSignature(t *testing.T) {
	other := NewSessionTokenManager("a-completely-different-secret-value!", time.Hour)
	token, err := other.GenerateToken("admin@allowed.com", "admin", "session_x")
	if err != nil {
		t.Fatal(err)
	}

	m := NewSessionTokenManager(testSecret, time.Hour)
	if _, err := m.DecodeClaims(token); err == nil {
		t.Fatal("a forged token must be rejected even without claim validation")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := NewSessionTokenManager(testSecret, time.Hour)
	if _, err := m.VerifyToken("definitely.not.a-jwt"); err == nil {
		t.Fatal("garbage input must be rejected")
	}
}
