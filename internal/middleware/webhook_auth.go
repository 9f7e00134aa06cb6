package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "appledger/internal/errors"
	"appledger/internal/logger"
)

const apiKeyScheme = "Apikey"

// WebhookAuthMiddleware checks the "Authorization: Apikey <key>" header sent by
// the payment provider against the configured key. Failures use the webhook
// response envelope so the provider sees the same shape on every reply.
func WebhookAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   gin.H{"code": "WEBHOOK_NOT_CONFIGURED", "message": "Payment webhook is not configured"},
			})
			return
		}

		key, ok := parseAPIKey(c.GetHeader("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			logger.Named("webhook").Warnw("rejected webhook call", "client_ip", c.ClientIP(), "has_header", ok)
			c.AbortWithStatusJSON(apperrors.ErrInvalidAPIKey.StatusCode, gin.H{
				"success": false,
				"error":   gin.H{"code": apperrors.ErrInvalidAPIKey.Code, "message": apperrors.ErrInvalidAPIKey.Message},
			})
			return
		}
		c.Next()
	}
}

func parseAPIKey(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, apiKeyScheme) {
		return "", false
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}
