package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTypeAdmin = "admin"

// ErrTokenExpired distinguishes an expired session token from a malformed one.
var ErrTokenExpired = errors.New("session token expired")

// SessionClaims is the decoded payload of an admin session cookie.
type SessionClaims struct {
	Email       string
	Role        string
	SessionType string
	SessionID   string
}

type SessionTokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewSessionTokenManager(secretKey string, duration time.Duration) *SessionTokenManager {
	return &SessionTokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: duration,
	}
}

func (m *SessionTokenManager) TokenDuration() time.Duration {
	return m.tokenDuration
}

// GenerateToken mints an HS256 token binding email, role and the server-side
// session identifier.
func (m *SessionTokenManager) GenerateToken(email, role, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          email,
		"role":         role,
		"session_type": sessionTypeAdmin,
		"sid":          sessionID,
		"exp":          now.Add(m.tokenDuration).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken validates the signature and expiry and returns the claims.
func (m *SessionTokenManager) VerifyToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, m.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return sessionClaimsFrom(token)
}

// DecodeClaims checks the signature only and accepts an expired token. Logout
// uses it so an expired cookie still identifies the server-side session to
// clear.
func (m *SessionTokenManager) DecodeClaims(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, m.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return sessionClaimsFrom(token)
}

func (m *SessionTokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method")
	}
	return m.secretKey, nil
}

func sessionClaimsFrom(token *jwt.Token) (*SessionClaims, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	email, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("invalid role claim")
	}
	sessionType, _ := claims["session_type"].(string)
	sessionID, _ := claims["sid"].(string)

	return &SessionClaims{
		Email:       email,
		Role:        role,
		SessionType: sessionType,
		SessionID:   sessionID,
	}, nil
}

// IsAdminSession reports whether the claims describe an admin cookie session.
func (c *SessionClaims) IsAdminSession() bool {
	return c.SessionType == sessionTypeAdmin
}
