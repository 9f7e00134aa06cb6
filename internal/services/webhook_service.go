package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"appledger/internal/cache"
	apperrors "appledger/internal/errors"
	"appledger/internal/logger"
	"appledger/internal/models"
	"appledger/internal/notify"
	"appledger/internal/paycode"
)

const (
	// ProviderSePay identifies SePay in reconciliation records.
	ProviderSePay = "sepay"

	// SePay reports local bank time without a zone.
	sepayDateLayout = "2006-01-02 15:04:05"

	transferTypeOut = "out"
)

var bankTimeZone = time.FixedZone("ICT", 7*60*60)

// ExternalID is a provider transaction id. SePay sends a number, other
// gateways send strings; both decode to the same text.
type ExternalID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("external id must be a number or string: %w", err)
	}
	*id = ExternalID(n.String())
	return nil
}

// SePayNotification is the body SePay posts for every account movement.
type SePayNotification struct {
	ID              ExternalID       `json:"id"`
	Gateway         string           `json:"gateway"`
	TransactionDate string           `json:"transactionDate"`
	AccountNumber   string           `json:"accountNumber"`
	Code            *string          `json:"code"`
	Content         string           `json:"content"`
	TransferType    string           `json:"transferType"`
	TransferAmount  *decimal.Decimal `json:"transferAmount"`
	Accumulated     decimal.Decimal  `json:"accumulated"`
	SubAccount      *string          `json:"subAccount"`
	ReferenceCode   string           `json:"referenceCode"`
	Description     string           `json:"description"`
}

// WebhookResult is returned to the provider on success.
type WebhookResult struct {
	TransactionID string `json:"transactionId,omitempty"`
	Duplicate     bool   `json:"duplicate"`
	Ignored       bool   `json:"ignored,omitempty"`
}

// webhookService reconciles payment notifications against pending entries.
type webhookService struct {
	db        *gorm.DB
	audit     AuditServicer
	cache     *cache.PaymentCache
	notifier  notify.Notifier
	tolerance decimal.Decimal
}

// NewWebhookService creates a new WebhookServicer. cache may be nil and
// notifier defaults to notify.Nop.
func NewWebhookService(db *gorm.DB, audit AuditServicer, paymentCache *cache.PaymentCache, notifier notify.Notifier, tolerance decimal.Decimal) WebhookServicer {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &webhookService{
		db:        db,
		audit:     audit,
		cache:     paymentCache,
		notifier:  notifier,
		tolerance: tolerance.Abs(),
	}
}

// HandleSePayNotification matches an incoming transfer to a pending payment
// request by the verification code in its content and completes it.
//
// Providers deliver at least once, so a repeat of a notification that was
// already applied reports success with Duplicate set. The pending to
// completed transition is a single conditional update; of two concurrent
// deliveries only one performs it.
func (s *webhookService) HandleSePayNotification(ctx context.Context, n SePayNotification) (*WebhookResult, error) {
	log := logger.Named("webhook").With("external_id", string(n.ID), "gateway", n.Gateway)

	if err := validateNotification(n); err != nil {
		log.Warnw("rejected webhook payload", "reason", err.Error())
		return nil, err
	}

	if strings.EqualFold(n.TransferType, transferTypeOut) {
		log.Infow("ignoring outgoing transfer")
		return &WebhookResult{Ignored: true}, nil
	}

	code, ok := paycode.ExtractFrom(n.Content, n.Description)
	if !ok {
		log.Warnw("no verification code in transfer content", "content", n.Content)
		return nil, apperrors.ErrVerificationCodeNotFound
	}
	log = log.With("code", code)

	if hit, err := s.cache.CompletedBy(ctx, code); err != nil {
		log.Warnw("payment cache lookup failed", "error", err)
	} else if hit != nil && hit.ExternalID == string(n.ID) {
		log.Infow("duplicate delivery answered from cache", "entry_id", hit.EntryID)
		return &WebhookResult{TransactionID: hit.EntryID, Duplicate: true}, nil
	}

	var entry models.LedgerEntry
	err := s.db.WithContext(ctx).Preload("Reconciliation").
		Where("verification_code = ?", code).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnw("no entry for verification code")
			return nil, apperrors.ErrPendingPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if entry.Status != models.EntryStatusPending {
		if appliedBy(&entry, n.ID) {
			log.Infow("duplicate delivery", "entry_id", entry.ID)
			return &WebhookResult{TransactionID: entry.ID, Duplicate: true}, nil
		}
		log.Warnw("entry is not pending", "entry_id", entry.ID, "status", entry.Status)
		return nil, apperrors.ErrPendingPaymentNotFound
	}

	transferred := *n.TransferAmount
	if entry.Amount.Sub(transferred).Abs().GreaterThan(s.tolerance) {
		log.Warnw("amount mismatch",
			"entry_id", entry.ID,
			"expected", entry.Amount.String(),
			"transferred", transferred.String(),
			"tolerance", s.tolerance.String(),
		)
		return nil, apperrors.ErrAmountMismatch
	}

	won, err := s.complete(ctx, &entry, n)
	if err != nil {
		return nil, err
	}
	if !won {
		return s.lostRace(ctx, log, entry.ID, n.ID)
	}

	log.Infow("payment reconciled", "entry_id", entry.ID, "amount", transferred.String())
	s.afterCompletion(ctx, log, &entry, code, n)

	return &WebhookResult{TransactionID: entry.ID}, nil
}

// complete performs the conditional update and writes the reconciliation row
// in one transaction. It reports false when the entry was no longer pending.
func (s *webhookService) complete(ctx context.Context, entry *models.LedgerEntry, n SePayNotification) (bool, error) {
	won := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LedgerEntry{}).
			Where("id = ? AND status = ?", entry.ID, models.EntryStatusPending).
			Update("status", models.EntryStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		won = true
		return tx.Create(reconciliationFrom(entry.ID, n)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, apperrors.ErrDuplicateExternalTransfer
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if won {
		entry.Status = models.EntryStatusCompleted
	}
	return won, nil
}

// lostRace resolves a delivery whose conditional update matched nothing
// because another delivery or an operator changed the entry first. Only a
// repeat of the transfer that won counts as a duplicate.
func (s *webhookService) lostRace(ctx context.Context, log *zap.SugaredLogger, entryID string, externalID ExternalID) (*WebhookResult, error) {
	var current models.LedgerEntry
	if err := s.db.WithContext(ctx).Preload("Reconciliation").First(&current, "id = ?", entryID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if current.Status != models.EntryStatusCompleted {
		log.Warnw("entry left pending before completion", "entry_id", entryID, "status", current.Status)
		return nil, apperrors.ErrPendingPaymentNotFound
	}
	if !appliedBy(&current, externalID) {
		log.Warnw("entry completed by another transfer", "entry_id", entryID)
		return nil, apperrors.ErrPendingPaymentNotFound
	}
	log.Infow("concurrent duplicate delivery", "entry_id", entryID)
	return &WebhookResult{TransactionID: entryID, Duplicate: true}, nil
}

// afterCompletion runs the best-effort side effects of a completed payment.
func (s *webhookService) afterCompletion(ctx context.Context, log *zap.SugaredLogger, entry *models.LedgerEntry, code string, n SePayNotification) {
	if err := s.cache.RememberCompletion(ctx, code, cache.Completion{EntryID: entry.ID, ExternalID: string(n.ID)}); err != nil {
		log.Warnw("failed to cache completion", "error", err)
	}

	s.audit.Log(ctx, SePayActor, AuditActionPaymentReceived, auditResourceEntry, entry.ID, "", map[string]interface{}{
		"external_id":     string(n.ID),
		"gateway":         n.Gateway,
		"transfer_amount": n.TransferAmount.String(),
		"status":          models.EntryStatusCompleted,
	})

	event := notify.PaymentEvent{
		EntryID:          entry.ID,
		UserID:           entry.UserID,
		VerificationCode: code,
		ExternalID:       string(n.ID),
		Gateway:          n.Gateway,
		Amount:           entry.Amount,
		TransferAmount:   *n.TransferAmount,
		Description:      entry.Description,
		CompletedAt:      time.Now(),
	}
	if err := s.notifier.PaymentCompleted(ctx, event); err != nil {
		log.Warnw("failed to notify operator", "error", err)
	}
}

func validateNotification(n SePayNotification) error {
	var missing []string
	if n.ID == "" {
		missing = append(missing, "id")
	}
	if n.TransferAmount == nil {
		missing = append(missing, "transferAmount")
	}
	if strings.TrimSpace(n.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidWebhookPayload, "missing required fields: "+strings.Join(missing, ", "))
	}
	if !n.TransferAmount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidWebhookPayload, "transferAmount must be greater than zero")
	}
	return nil
}

func appliedBy(entry *models.LedgerEntry, externalID ExternalID) bool {
	return entry.Status == models.EntryStatusCompleted &&
		entry.Reconciliation != nil &&
		entry.Reconciliation.Provider == ProviderSePay &&
		entry.Reconciliation.ExternalID == string(externalID)
}

func reconciliationFrom(entryID string, n SePayNotification) *models.LedgerReconciliation {
	r := &models.LedgerReconciliation{
		EntryID:            entryID,
		Provider:           ProviderSePay,
		ExternalID:         string(n.ID),
		Gateway:            n.Gateway,
		AccountNumber:      n.AccountNumber,
		ReferenceCode:      n.ReferenceCode,
		TransferType:       strings.ToLower(n.TransferType),
		TransferAmount:     *n.TransferAmount,
		Accumulated:        n.Accumulated,
		Content:            n.Content,
		Description:        n.Description,
		RawTransactionDate: n.TransactionDate,
		BankTransactionAt:  parseBankTime(n.TransactionDate),
	}
	if n.Code != nil {
		r.BankCode = *n.Code
	}
	if n.SubAccount != nil {
		r.SubAccount = *n.SubAccount
	}
	return r
}

// parseBankTime reads SePay's local timestamp, falling back to RFC 3339.
func parseBankTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.ParseInLocation(sepayDateLayout, raw, bankTimeZone); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}
