package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "appledger/internal/errors"
	"appledger/internal/ledger"
	"appledger/internal/logger"
	"appledger/internal/models"
	"appledger/internal/paycode"
	"appledger/internal/qrrender"
)

// maxCodeAttempts bounds verification code generation per request.
const maxCodeAttempts = 5

// PaymentRequestInput is a request for a QR payment. UserID is honoured for
// admins only.
type PaymentRequestInput struct {
	Amount        decimal.Decimal
	Description   string
	ApplicationID *string
	UserID        string
}

// QRData is what a QR renderer needs to produce a scannable payment. The
// embedded rendering is present only when a receiving bank account is
// configured.
type QRData struct {
	Amount           decimal.Decimal `json:"amount"`
	Content          string          `json:"content"`
	VerificationCode string          `json:"verificationCode"`
	EntryID          string          `json:"entryId"`
	*qrrender.Result
}

// PaymentRequest is a pending ledger entry plus its QR payload.
type PaymentRequest struct {
	Transaction ledger.EntryView `json:"transaction"`
	QRData      QRData           `json:"qrData"`
}

// paymentService creates QR payment requests.
type paymentService struct {
	db       *gorm.DB
	renderer *qrrender.Renderer
	audit    AuditServicer
	generate paycode.Generator
}

// NewPaymentService creates a new PaymentServicer. renderer may be nil.
func NewPaymentService(db *gorm.DB, renderer *qrrender.Renderer, audit AuditServicer) PaymentServicer {
	return newPaymentService(db, renderer, audit, paycode.Generate)
}

func newPaymentService(db *gorm.DB, renderer *qrrender.Renderer, audit AuditServicer, generate paycode.Generator) *paymentService {
	return &paymentService{db: db, renderer: renderer, audit: audit, generate: generate}
}

// CreatePaymentRequest stores a pending entry carrying a fresh verification
// code and returns the transfer content the payer must use. Money always
// flows to the operator: a client request is booked as income/user_payment,
// an admin request as income/other_income.
func (s *paymentService) CreatePaymentRequest(ctx context.Context, actor ledger.Actor, input PaymentRequestInput) (*PaymentRequest, error) {
	amount, description, err := validateAmountAndDescription(input.Amount, input.Description)
	if err != nil {
		return nil, err
	}

	ownerID, err := resolveOwner(ctx, s.db, actor, input.UserID)
	if err != nil {
		return nil, err
	}

	applicationID, err := checkApplication(ctx, s.db, actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	placement := ledger.PaymentRequestPlacement(actor)
	entry, err := s.insertWithUniqueCode(ctx, func(code string) *models.LedgerEntry {
		return &models.LedgerEntry{
			UserID:           ownerID,
			ApplicationID:    applicationID,
			Type:             placement.Type,
			Category:         placement.Category.Value(),
			Amount:           amount,
			Status:           models.EntryStatusPending,
			Description:      description,
			TransactionDate:  transactionDateOrNow(nil),
			VerificationCode: &code,
		}
	})
	if err != nil {
		return nil, err
	}

	code := *entry.VerificationCode
	qr := QRData{
		Amount:           entry.Amount,
		Content:          paycode.BuildContent(description, code),
		VerificationCode: code,
		EntryID:          entry.ID,
	}

	rendered, err := s.renderer.Render(entry.Amount, qr.Content)
	if err != nil {
		logger.Named("payment").Warnw("failed to render payment QR", "entry_id", entry.ID, "error", err)
	}
	qr.Result = rendered

	s.audit.Log(ctx, actor.UserID, AuditActionPaymentRequest, auditResourceEntry, entry.ID, actor.ClientIP, map[string]interface{}{
		"owner_id":          entry.UserID,
		"amount":            entry.Amount.String(),
		"verification_code": code,
	})

	return &PaymentRequest{
		Transaction: ledger.View(actor.Role, *entry),
		QRData:      qr,
	}, nil
}

// insertWithUniqueCode generates codes until one is free and the insert
// succeeds. The unique index on verification_code is the final arbiter; a
// duplicate-key error from a concurrent insert counts as a collision.
func (s *paymentService) insertWithUniqueCode(ctx context.Context, build func(code string) *models.LedgerEntry) (*models.LedgerEntry, error) {
	log := logger.Named("payment")
	db := s.db.WithContext(ctx)

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := db.Model(&models.LedgerEntry{}).Where("verification_code = ?", code).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			log.Warnw("verification code collision", "attempt", attempt)
			continue
		}

		entry := build(code)
		err = db.Create(entry).Error
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		log.Warnw("verification code taken during insert", "attempt", attempt)
	}

	return nil, apperrors.ErrVerificationCodeExhausted
}
