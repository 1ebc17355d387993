package middleware

import (
	"errors"

	"madrasa/domain"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "admin_session"

func abortWithAuthError(c *gin.Context, code domain.ErrorCode) {
	e := domain.NewAuthError(code, nil)
	c.JSON(e.StatusCode, gin.H{
		"success":  false,
		"error":    e.Message,
		"error_ar": e.MessageAr,
		"code":     e.Code,
	})
	c.Abort()
}

// AdminAuth decodes the session cookie, re-validates the server-side session
// row and refreshes its last access time before letting the request through.
func AdminAuth(tokens *utils.SessionTokenManager, authUC domain.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			abortWithAuthError(c, domain.ErrNoSession)
			return
		}

		claims, err := tokens.VerifyToken(cookie)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				abortWithAuthError(c, domain.ErrSessionExpired)
				return
			}
			abortWithAuthError(c, domain.ErrInvalidSession)
			return
		}
		if !claims.IsAdminSession() {
			abortWithAuthError(c, domain.ErrInvalidSessionType)
			return
		}

		status, err := authUC.ValidateSession(c.Request.Context(), claims.Email)
		if err != nil {
			var ae *domain.AuthError
			if errors.As(err, &ae) {
				abortWithAuthError(c, ae.Code)
				return
			}
			abortWithAuthError(c, domain.ErrInternal)
			return
		}
		if !status.IsValid {
			abortWithAuthError(c, status.Reason)
			return
		}

		// Access-time refresh; failure here is not worth rejecting the request.
		_ = authUC.TouchSession(c.Request.Context(), claims.Email)

		c.Set("adminEmail", claims.Email)
		c.Set("role", claims.Role)
		c.Set("sessionID", status.Session.SessionID)
		c.Next()
	}
}

// AdminOnly guards routes behind the admin role set by AdminAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != domain.RoleAdmin {
			abortWithAuthError(c, domain.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}
