package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "appledger/internal/errors"
	"appledger/internal/services"
)

// WebhookHandler receives payment provider notifications.
type WebhookHandler struct {
	webhookService services.WebhookServicer
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookService services.WebhookServicer) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// WebhookResponse is the body returned to the provider on success.
type WebhookResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Duplicate     bool   `json:"duplicate"`
	Ignored       bool   `json:"ignored,omitempty"`
}

// WebhookErrorResponse is the body returned to the provider on failure.
type WebhookErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// SePay reconciles a SePay bank transfer notification
// @Summary     SePay payment webhook
// @Description Matches an incoming transfer to a pending payment request by the verification code in its content and completes it. Repeated deliveries of an applied transfer succeed with duplicate=true.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body services.SePayNotification true "SePay notification"
// @Success     200 {object} WebhookResponse "Transfer applied, duplicate or ignored"
// @Failure     400 {object} WebhookErrorResponse "Invalid payload, no code or amount mismatch"
// @Failure     401 {object} WebhookErrorResponse "Invalid API key"
// @Failure     404 {object} WebhookErrorResponse "No pending payment for the code"
// @Failure     409 {object} WebhookErrorResponse "Transfer already applied to another entry"
// @Failure     500 {object} WebhookErrorResponse "Server error"
// @Router      /webhooks/sepay [post]
func (h *WebhookHandler) SePay(c *gin.Context) {
	var n services.SePayNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		respondWebhookError(c, apperrors.WithMessage(apperrors.ErrInvalidWebhookPayload, "Malformed webhook payload"))
		return
	}

	result, err := h.webhookService.HandleSePayNotification(c.Request.Context(), n)
	if err != nil {
		respondWebhookError(c, err)
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{
		Success:       true,
		TransactionID: result.TransactionID,
		Duplicate:     result.Duplicate,
		Ignored:       result.Ignored,
	})
}

func respondWebhookError(c *gin.Context, err error) {
	status, body := errorPayload(c, err)
	body["success"] = false
	c.JSON(status, body)
}
