package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "appledger/internal/errors"
	"appledger/internal/ledger"
	"appledger/internal/logger"
	"appledger/internal/middleware"
	"appledger/internal/models"
)

// getActor builds the calling actor from the values AuthMiddleware stored.
// Returns ErrUnauthorized if they are missing.
func getActor(c *gin.Context) (ledger.Actor, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return ledger.Actor{}, apperrors.ErrUnauthorized
	}
	role, _ := c.Get(middleware.RoleKey)
	r, ok := role.(models.UserRole)
	if !ok || r == "" {
		r = models.UserRoleUser
	}
	return ledger.Actor{UserID: userID, Role: r, ClientIP: c.ClientIP()}, nil
}

// flexibleLayouts are the date formats accepted in bodies and query strings.
var flexibleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseFlexibleTime parses an RFC 3339 timestamp or a plain date. Values
// without a zone are read as UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", s)
}

// parseOptionalTime parses s when it is not empty.
func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseQueryDate reads a date filter. A plain to-date covers the whole day.
func parseQueryDate(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	t, err := parseOptionalTime(raw)
	if err != nil || t == nil {
		return t, err
	}
	if endOfDay && len(raw) == len("2006-01-02") {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end, nil
	}
	return t, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	c.JSON(errorPayload(c, err))
}

func errorPayload(c *gin.Context, err error) (int, gin.H) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	return appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
