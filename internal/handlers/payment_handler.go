package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "appledger/internal/errors"
	"appledger/internal/services"
)

// PaymentHandler handles QR payment requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest is the payload for a QR payment request. user_id is
// honoured for admins only.
type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Description   string          `json:"description" binding:"required,max=500"`
	ApplicationID *string         `json:"application_id"`
	UserID        string          `json:"user_id"`
}

// CreateQRPayment creates a pending entry and the data for its payment QR
// @Summary     Create a QR payment request
// @Description Stores a pending income entry with a fresh verification code. The payer must transfer with the returned content so the bank webhook can match it.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePaymentRequest true "Payment details"
// @Success     201 {object} services.PaymentRequest "Payment request created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User or application not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/qr [post]
func (h *PaymentHandler) CreateQRPayment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.CreatePaymentRequest(c.Request.Context(), actor, services.PaymentRequestInput{
		Amount:        req.Amount,
		Description:   req.Description,
		ApplicationID: req.ApplicationID,
		UserID:        req.UserID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
