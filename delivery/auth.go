package delivery

import (
	"errors"
	"net/http"

	"madrasa/domain"
	"madrasa/middleware"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
	tokens *utils.SessionTokenManager
	secure bool
}

// NewAuthHandler mounts the admin OTP login flow and the session cookie bridge.
func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, tokens *utils.SessionTokenManager, env string) {
	handler := &AuthHandler{
		authUC: authUC,
		tokens: tokens,
		secure: env != "development",
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	admin := r.Group("/auth/admin")
	{
		admin.POST("/send-otp", handler.SendOTP)
		admin.POST("/verify-otp", handler.VerifyOTP)
		admin.GET("/validate-session", handler.ValidateSession)
		admin.POST("/logout", handler.Logout)
	}
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "SendOTP", err)
		return
	}

	challenge, err := h.authUC.RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		respondAuthError(c, &req.Email, "SendOTP", err)
		return
	}

	utils.PrintLogInfo(&req.Email, http.StatusOK, "SendOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "OTP sent to your email",
		"message_ar": "تم إرسال رمز التحقق إلى بريدك الإلكتروني",
		"expires_at": challenge.ExpiresAt,
	})
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "VerifyOTP", err)
		return
	}

	session, err := h.authUC.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondAuthError(c, &req.Email, "VerifyOTP", err)
		return
	}

	token, err := h.tokens.GenerateToken(session.Email, domain.RoleAdmin, session.SessionID)
	if err != nil {
		respondAuthError(c, &req.Email, "VerifyOTP", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.tokens.TokenDuration().Seconds()),
		"/",
		"",
		h.secure,
		true, // HttpOnly
	)

	utils.PrintLogInfo(&session.Email, http.StatusOK, "VerifyOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"email":      session.Email,
			"role":       domain.RoleAdmin,
			"session_id": session.SessionID,
		},
		"session": gin.H{
			"expires_at":     session.ExpiresAt,
			"created_at":     session.CreatedAt,
			"last_access_at": session.LastAccessAt,
		},
	})
}

func (h *AuthHandler) ValidateSession(c *gin.Context) {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie == "" {
		respondAuthError(c, nil, "ValidateSession", domain.NewAuthError(domain.ErrNoSession, nil))
		return
	}

	claims, err := h.tokens.VerifyToken(cookie)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			respondAuthError(c, nil, "ValidateSession", domain.NewAuthError(domain.ErrSessionExpired, nil))
			return
		}
		respondAuthError(c, nil, "ValidateSession", domain.NewAuthError(domain.ErrInvalidSession, nil))
		return
	}
	if !claims.IsAdminSession() {
		respondAuthError(c, &claims.Email, "ValidateSession", domain.NewAuthError(domain.ErrInvalidSessionType, nil))
		return
	}

	status, err := h.authUC.ValidateSession(c.Request.Context(), claims.Email)
	if err != nil {
		respondAuthError(c, &claims.Email, "ValidateSession", err)
		return
	}
	if !status.IsValid {
		respondAuthError(c, &claims.Email, "ValidateSession", domain.NewAuthError(status.Reason, nil))
		return
	}

	if err := h.authUC.TouchSession(c.Request.Context(), claims.Email); err != nil {
		respondAuthError(c, &claims.Email, "ValidateSession", err)
		return
	}

	utils.PrintLogInfo(&claims.Email, http.StatusOK, "ValidateSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"email":      claims.Email,
			"role":       claims.Role,
			"session_id": status.Session.SessionID,
		},
		"session": gin.H{
			"expires_at":     status.Session.ExpiresAt,
			"created_at":     status.Session.CreatedAt,
			"last_access_at": status.Session.LastAccessAt,
		},
	})
}

// Logout always succeeds: the point is clearing client state, which works
// regardless of what the server manages to delete.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		// Signature-only decode: an expired cookie still names the session to drop.
		if claims, err := h.tokens.DecodeClaims(cookie); err == nil {
			_ = h.authUC.Logout(c.Request.Context(), claims.Email)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}
