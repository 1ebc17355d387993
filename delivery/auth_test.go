package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"madrasa/domain"
	"madrasa/middleware"
	"madrasa/utils"
)

const (
	testAdmin  = "admin@allowed.com"
	testSecret = "0123456789abcdef0123456789abcdef"
)

// fakeAuthUseCase drives the handlers with a scripted OTP engine: one pending
// code and at most one live session.
type fakeAuthUseCase struct {
	pendingCode string
	session     *domain.AdminSession
}

func (f *fakeAuthUseCase) RequestOTP(_ context.Context, email string) (*domain.OTPChallenge, error) {
	email = utils.NormalizeEmail(email)
	if email != testAdmin {
		return nil, domain.NewAuthError(domain.ErrUnauthorizedEmail, nil)
	}
	f.pendingCode = "482913"
	return &domain.OTPChallenge{
		Email:     email,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (f *fakeAuthUseCase) VerifyOTP(_ context.Context, email, code string) (*domain.AdminSession, error) {
	email = utils.NormalizeEmail(email)
	if email != testAdmin {
		return nil, domain.NewAuthError(domain.ErrUnauthorizedEmail, nil)
	}
	if f.pendingCode == "" || code != f.pendingCode {
		return nil, domain.NewAuthError(domain.ErrOTPInvalid, nil)
	}
	f.pendingCode = ""

	now := time.Now()
	f.session = &domain.AdminSession{
		Email:        email,
		SessionID:    utils.NewSessionID(email, now.UnixMilli()),
		CreatedAt:    now,
		LastAccessAt: now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	return f.session, nil
}

func (f *fakeAuthUseCase) ValidateSession(_ context.Context, email string) (*domain.SessionStatus, error) {
	if utils.NormalizeEmail(email) != testAdmin {
		return &domain.SessionStatus{IsValid: false, Reason: domain.ErrUnauthorizedEmail}, nil
	}
	if f.session == nil {
		return &domain.SessionStatus{IsValid: false, Reason: domain.ErrNoActiveSession}, nil
	}
	return &domain.SessionStatus{IsValid: true, Session: f.session}, nil
}

func (f *fakeAuthUseCase) TouchSession(_ context.Context, email string) error {
	if f.session == nil {
		return domain.NewAuthError(domain.ErrNoActiveSession, nil)
	}
	f.session.LastAccessAt = time.Now()
	return nil
}

func (f *fakeAuthUseCase) Logout(_ context.Context, email string) error {
	f.session = nil
	return nil
}

func (f *fakeAuthUseCase) CleanupExpired(context.Context) (*domain.CleanupReport, error) {
	return &domain.CleanupReport{}, nil
}

func newAuthTestServer(t *testing.T) (*gin.Engine, *fakeAuthUseCase, *utils.SessionTokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := &fakeAuthUseCase{}
	tokens := utils.NewSessionTokenManager(testSecret, 24*time.Hour)
	r := gin.New()
	NewAuthHandler(r, uc, tokens, "development")
	return r, uc, tokens
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, w.Body.String())
	}
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", middleware.SessionCookieName)
	return nil
}

func TestSendOTPValidation(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"not-an-email"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != string(domain.ErrInvalidInput) {
		t.Fatalf("code = %v", body["code"])
	}
	if body["error_ar"] == "" {
		t.Fatal("Arabic message missing")
	}
}

func TestSendOTPUnauthorizedEmail(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"intruder@evil.com"}`, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != string(domain.ErrUnauthorizedEmail) {
		t.Fatalf("code = %v", body["code"])
	}
}

func TestSendOTPNeverReturnsTheCode(t *testing.T) {
	r, uc, _ := newAuthTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	if uc.pendingCode == "" {
		t.Fatal("no code was issued")
	}
	if strings.Contains(w.Body.String(), uc.pendingCode) {
		t.Fatal("OTP code leaked into the response body")
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["expires_at"] == nil {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	w := doJSON(t, r, http.MethodPost, "/auth/admin/verify-otp",
		`{"email":"admin@allowed.com","code":"000000"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != string(domain.ErrOTPInvalid) {
		t.Fatalf("code = %v", body["code"])
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("failed verification must not set a cookie")
	}
}

func TestVerifyOTPSetsSessionCookie(t *testing.T) {
	r, uc, tokens := newAuthTestServer(t)

	doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	w := doJSON(t, r, http.MethodPost, "/auth/admin/verify-otp",
		`{"email":"admin@allowed.com","code":"482913"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v", cookie.SameSite)
	}
	if cookie.Secure {
		t.Fatal("cookie should not be Secure in development")
	}

	claims, err := tokens.VerifyToken(cookie.Value)
	if err != nil {
		t.Fatalf("cookie does not hold a valid token: %v", err)
	}
	if claims.Email != testAdmin || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.IsAdminSession() {
		t.Fatal("token is not an admin session")
	}
	if claims.SessionID != uc.session.SessionID {
		t.Fatal("token is not bound to the server-side session")
	}

	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	if user["email"] != testAdmin || user["role"] != domain.RoleAdmin {
		t.Fatalf("user = %v", user)
	}
}

func TestValidateSessionFlow(t *testing.T) {
	r, _, tokens := newAuthTestServer(t)

	// No cookie at all.
	w := doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without cookie = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != string(domain.ErrNoSession) {
		t.Fatalf("code = %v", body["code"])
	}

	// Garbage cookie.
	w = doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-jwt"})
	if body := decodeBody(t, w); body["code"] != string(domain.ErrInvalidSession) {
		t.Fatalf("code = %v", body["code"])
	}

	// Cookie signed with the wrong secret.
	forged := utils.NewSessionTokenManager("another-secret-that-is-long-enough!!", time.Hour)
	forgedToken, err := forged.GenerateToken(testAdmin, domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}
	w = doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: forgedToken})
	if body := decodeBody(t, w); body["code"] != string(domain.ErrInvalidSession) {
		t.Fatalf("code = %v", body["code"])
	}

	// Valid cookie but no server-side session behind it.
	orphan, err := tokens.GenerateToken(testAdmin, domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}
	w = doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: orphan})
	if body := decodeBody(t, w); body["code"] != string(domain.ErrNoActiveSession) {
		t.Fatalf("code = %v", body["code"])
	}

	// Full login, then validate with the issued cookie.
	doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	login := doJSON(t, r, http.MethodPost, "/auth/admin/verify-otp",
		`{"email":"admin@allowed.com","code":"482913"}`, nil)
	cookie := sessionCookie(t, login)

	w = doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status with valid session = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	if body["user"].(map[string]any)["email"] != testAdmin {
		t.Fatalf("user = %v", body["user"])
	}
}

func TestValidateSessionExpiredToken(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	expired := utils.NewSessionTokenManager(testSecret, -time.Minute)
	token, err := expired.GenerateToken(testAdmin, domain.RoleAdmin, "sid")
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodGet, "/auth/admin/validate-session", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != string(domain.ErrSessionExpired) {
		t.Fatalf("code = %v", body["code"])
	}
}

func TestLogoutClearsCookieAndSession(t *testing.T) {
	r, uc, _ := newAuthTestServer(t)

	doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	login := doJSON(t, r, http.MethodPost, "/auth/admin/verify-otp",
		`{"email":"admin@allowed.com","code":"482913"}`, nil)
	cookie := sessionCookie(t, login)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if uc.session != nil {
		t.Fatal("server-side session survived logout")
	}

	cleared := sessionCookie(t, w)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}
}

func TestLogoutWithExpiredCookieStillClearsSession(t *testing.T) {
	r, uc, _ := newAuthTestServer(t)

	doJSON(t, r, http.MethodPost, "/auth/admin/send-otp", `{"email":"admin@allowed.com"}`, nil)
	doJSON(t, r, http.MethodPost, "/auth/admin/verify-otp",
		`{"email":"admin@allowed.com","code":"482913"}`, nil)
	if uc.session == nil {
		t.Fatal("login did not create a session")
	}

	expired := utils.NewSessionTokenManager(testSecret, -time.Minute)
	token, err := expired.GenerateToken(testAdmin, domain.RoleAdmin, uc.session.SessionID)
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPost, "/auth/admin/logout", "",
		&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if uc.session != nil {
		t.Fatal("expired cookie must still clear the server-side session")
	}
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Fatalf("body = %v", body)
	}
}
