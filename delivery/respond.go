package delivery

import (
	"madrasa/domain"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondAuthError renders any failure through the taxonomy. Details pass the
// allow-list filter here, so fields kept for server-side logs never leak.
func respondAuthError(c *gin.Context, email *string, functionName string, err error) {
	e := domain.Classify(err)

	if domain.IsSecuritySensitive(e.Code) {
		user := "anonymous"
		if email != nil {
			user = *email
		}
		log.Warn().
			Str("user", user).
			Str("code", string(e.Code)).
			Str("function", functionName).
			Str("ip", c.ClientIP()).
			Msg("security-sensitive auth failure")
	}
	utils.PrintLogInfo(email, e.StatusCode, functionName, &err)

	body := gin.H{
		"success":   false,
		"error":     e.Message,
		"error_ar":  e.MessageAr,
		"code":      e.Code,
		"timestamp": e.Timestamp,
	}
	if details := domain.SanitizeDetails(e.Details); details != nil {
		body["details"] = details
	}
	c.JSON(e.StatusCode, body)
}

// respondValidationError maps a binding failure to INVALID_INPUT with the
// translated field messages in the details payload.
func respondValidationError(c *gin.Context, functionName string, err error) {
	en, ar := utils.TranslateValidationError(err)
	e := domain.NewAuthError(domain.ErrInvalidInput, map[string]any{
		"validationErrors": []string{en, ar},
	})
	utils.PrintLogInfo(nil, e.StatusCode, functionName, &err)
	c.JSON(e.StatusCode, gin.H{
		"success":  false,
		"error":    e.Message,
		"error_ar": e.MessageAr,
		"code":     e.Code,
		"details":  e.Details,
	})
}
