package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"madrasa/domain"
	"madrasa/utils"
)

type stubAuthUseCase struct {
	status  *domain.SessionStatus
	touched int
}

func (s *stubAuthUseCase) RequestOTP(context.Context, string) (*domain.OTPChallenge, error) {
	return nil, nil
}
func (s *stubAuthUseCase) VerifyOTP(context.Context, string, string) (*domain.AdminSession, error) {
	return nil, nil
}
func (s *stubAuthUseCase) ValidateSession(context.Context, string) (*domain.SessionStatus, error) {
	return s.status, nil
}
func (s *stubAuthUseCase) TouchSession(context.Context, string) error {
	s.touched++
	return nil
}
func (s *stubAuthUseCase) Logout(context.Context, string) error { return nil }
func (s *stubAuthUseCase) CleanupExpired(context.Context) (*domain.CleanupReport, error) {
	return nil, nil
}

func newGuardedRouter(t *testing.T, uc domain.AuthUseCase, tokens *utils.SessionTokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AdminAuth(tokens, uc), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": c.GetString("adminEmail"),
			"role":  c.GetString("role"),
		})
	})
	return r
}

func requestWithCookie(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, w.Body.String())
	}
	code, _ := body["code"].(string)
	return code
}

func TestAdminAuthRejectsMissingCookie(t *testing.T) {
	tokens := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	r := newGuardedRouter(t, &stubAuthUseCase{}, tokens)

	w := requestWithCookie(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if errorCode(t, w) != string(domain.ErrNoSession) {
		t.Fatalf("code = %q", errorCode(t, w))
	}
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	tokens := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	r := newGuardedRouter(t, &stubAuthUseCase{}, tokens)

	w := requestWithCookie(r, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if errorCode(t, w) != string(domain.ErrInvalidSession) {
		t.Fatalf("code = %q", errorCode(t, w))
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	tokens := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	expired := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", -time.Minute)
	token, err := expired.GenerateToken("admin@allowed.com", domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}

	r := newGuardedRouter(t, &stubAuthUseCase{}, tokens)
	w := requestWithCookie(r, token)
	if errorCode(t, w) != string(domain.ErrSessionExpired) {
		t.Fatalf("code = %q", errorCode(t, w))
	}
}

func TestAdminAuthRejectsDeadServerSession(t *testing.T) {
	tokens := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := tokens.GenerateToken("admin@allowed.com", domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}

	uc := &stubAuthUseCase{status: &domain.SessionStatus{IsValid: false, Reason: domain.ErrNoActiveSession}}
	r := newGuardedRouter(t, uc, tokens)

	w := requestWithCookie(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if errorCode(t, w) != string(domain.ErrNoActiveSession) {
		t.Fatalf("code = %q", errorCode(t, w))
	}
}

func TestAdminAuthPassesValidSession(t *testing.T) {
	tokens := utils.NewSessionTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := tokens.GenerateToken("admin@allowed.com", domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}

	uc := &stubAuthUseCase{status: &domain.SessionStatus{
		IsValid: true,
		Session: &domain.AdminSession{Email: "admin@allowed.com", SessionID: "sid"},
	}}
	r := newGuardedRouter(t, uc, tokens)

	w := requestWithCookie(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	if uc.touched != 1 {
		t.Fatalf("session touched %d times, want 1", uc.touched)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["email"] != "admin@allowed.com" || body["role"] != domain.RoleAdmin {
		t.Fatalf("context values = %v", body)
	}
}

func TestAdminOnlyBlocksOtherRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Set("role", "teacher") }, AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	if errorCode(t, w) != string(domain.ErrInsufficientPermissions) {
		t.Fatalf("code = %q", errorCode(t, w))
	}
}
