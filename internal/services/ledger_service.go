package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "appledger/internal/errors"
	"appledger/internal/ledger"
	"appledger/internal/models"
	"appledger/internal/pagination"
	"appledger/internal/uuid"
)

const (
	maxDescriptionLength = 500
	amountScale          = 2
)

// ledgerService handles ledger entry business logic.
type ledgerService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, audit AuditServicer) LedgerServicer {
	return &ledgerService{db: db, audit: audit}
}

// CreateEntry records a completed entry. The submitted type is translated to
// the stored, admin-relative placement according to the actor's role.
func (s *ledgerService) CreateEntry(ctx context.Context, actor ledger.Actor, input CreateEntryInput) (*ledger.EntryView, error) {
	amount, description, err := validateAmountAndDescription(input.Amount, input.Description)
	if err != nil {
		return nil, err
	}

	placement, err := ledger.ResolveWrite(actor, input.Type, input.Category)
	if err != nil {
		return nil, placementError(err)
	}

	ownerID, err := resolveOwner(ctx, s.db, actor, input.UserID)
	if err != nil {
		return nil, err
	}

	applicationID, err := checkApplication(ctx, s.db, actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		UserID:          ownerID,
		ApplicationID:   applicationID,
		Type:            placement.Type,
		Category:        placement.Category.Value(),
		Amount:          amount,
		Status:          models.EntryStatusCompleted,
		Description:     description,
		TransactionDate: transactionDateOrNow(input.TransactionDate),
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateVerificationCode
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(ctx, actor.UserID, AuditActionCreateEntry, auditResourceEntry, entry.ID, actor.ClientIP, map[string]interface{}{
		"owner_id": entry.UserID,
		"type":     entry.Type,
		"category": entry.Category,
		"amount":   entry.Amount.String(),
	})

	view := ledger.View(actor.Role, *entry)
	return &view, nil
}

// GetEntries lists the entries visible to the actor, newest first.
func (s *ledgerService) GetEntries(ctx context.Context, actor ledger.Actor, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[ledger.EntryView], error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	page.Defaults()

	query := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.LedgerEntry{}).Scopes(filterScope(actor, filter))
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := query().Scopes(pagination.Paginate(page)).
		Preload("Reconciliation").
		Order("transaction_date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stored := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	result := pagination.Map(stored, func(e models.LedgerEntry) ledger.EntryView {
		return ledger.View(actor.Role, e)
	})
	return &result, nil
}

// GetEntryByID returns one entry visible to the actor.
func (s *ledgerService) GetEntryByID(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error) {
	entry, err := findEntry(ctx, s.db, actor, id)
	if err != nil {
		return nil, err
	}
	view := ledger.View(actor.Role, *entry)
	return &view, nil
}

// UpdateEntry applies a partial update. Cancelled entries are read-only and
// the amount and type of a payment request never change. Clients may only
// edit entries they recorded themselves.
func (s *ledgerService) UpdateEntry(ctx context.Context, actor ledger.Actor, id string, input UpdateEntryInput) (*ledger.EntryView, error) {
	entry, err := findEntry(ctx, s.db, actor, id)
	if err != nil {
		return nil, err
	}

	if entry.Status == models.EntryStatusCancelled {
		return nil, apperrors.WithMessage(apperrors.ErrLedgerEntryNotEditable, "cancelled entries cannot be edited")
	}
	if !actor.IsAdmin() {
		if c, ok := ledger.Lookup(entry.Category); !ok || !c.ClientDerived() {
			return nil, apperrors.WithMessage(apperrors.ErrForbidden, "only entries you recorded can be edited")
		}
	}

	newType := entry.Type
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperrors.ErrInvalidEntryType
		}
		newType = ledger.StoredType(actor.Role, *input.Type)
	}

	newAmount := entry.Amount
	if input.Amount != nil {
		if newAmount, err = validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	if entry.FromPaymentRequest() && (newType != entry.Type || !newAmount.Equal(entry.Amount)) {
		return nil, apperrors.WithMessage(apperrors.ErrLedgerEntryNotEditable, "amount and type of a payment request cannot be changed")
	}

	newCategory := entry.Category
	if actor.IsAdmin() {
		raw := entry.Category
		if input.Category != nil {
			raw = *input.Category
		} else if newType != entry.Type {
			raw = ""
		}
		c, err := ledger.ResolveCategory(newType, raw)
		if err != nil {
			return nil, placementError(err)
		}
		newCategory = c.Value()
	} else if newType != entry.Type {
		placement, err := ledger.ResolveWrite(actor, *input.Type, "")
		if err != nil {
			return nil, placementError(err)
		}
		newCategory = placement.Category.Value()
	}

	updates := map[string]interface{}{
		"type":     newType,
		"category": newCategory,
		"amount":   newAmount,
	}

	if input.Description != nil {
		_, description, err := validateAmountAndDescription(newAmount, *input.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if input.TransactionDate != nil && !input.TransactionDate.IsZero() {
		updates["transaction_date"] = input.TransactionDate.UTC()
	}
	if input.ApplicationID != nil {
		applicationID, err := checkApplication(ctx, s.db, actor, input.ApplicationID)
		if err != nil {
			return nil, err
		}
		updates["application_id"] = applicationID
	}

	res := s.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("id = ? AND status <> ?", entry.ID, models.EntryStatusCancelled).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrLedgerEntryNotEditable, "cancelled entries cannot be edited")
	}

	s.audit.Log(ctx, actor.UserID, AuditActionUpdateEntry, auditResourceEntry, entry.ID, actor.ClientIP, auditChanges(updates))

	return s.GetEntryByID(ctx, actor, entry.ID)
}

// CancelEntry moves a pending entry to cancelled. Admins may cancel any
// entry; clients only their own.
func (s *ledgerService) CancelEntry(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error) {
	entry, err := findEntry(ctx, s.db, actor, id)
	if err != nil {
		return nil, err
	}
	if err := transitionPending(ctx, s.db, entry.ID, models.EntryStatusCancelled); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor.UserID, AuditActionCancelEntry, auditResourceEntry, entry.ID, actor.ClientIP, nil)
	return s.GetEntryByID(ctx, actor, entry.ID)
}

// CompleteEntry lets an admin settle a pending entry by hand, for payments
// that never produced a matching webhook.
func (s *ledgerService) CompleteEntry(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	entry, err := findEntry(ctx, s.db, actor, id)
	if err != nil {
		return nil, err
	}
	if err := transitionPending(ctx, s.db, entry.ID, models.EntryStatusCompleted); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor.UserID, AuditActionCompleteEntry, auditResourceEntry, entry.ID, actor.ClientIP, map[string]interface{}{"manual": true})
	return s.GetEntryByID(ctx, actor, entry.ID)
}

// DeleteEntry removes an entry and its reconciliation record. Admin only.
func (s *ledgerService) DeleteEntry(ctx context.Context, actor ledger.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	entry, err := findEntry(ctx, s.db, actor, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&models.LedgerReconciliation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LedgerEntry{}, "id = ?", entry.ID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(ctx, actor.UserID, AuditActionDeleteEntry, auditResourceEntry, entry.ID, actor.ClientIP, map[string]interface{}{
		"owner_id": entry.UserID,
		"amount":   entry.Amount.String(),
		"status":   entry.Status,
	})
	return nil
}

// GetStatistics summarizes every entry matching filter for the actor.
func (s *ledgerService) GetStatistics(ctx context.Context, actor ledger.Actor, filter LedgerFilter) (*ledger.Summary, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var entries []models.LedgerEntry
	if err := s.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Scopes(filterScope(actor, filter)).
		Select("type", "status", "amount").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := ledger.Summarize(entries, actor.Role)
	return &summary, nil
}

// filterScope restricts a query to what the actor may see and applies filter.
// A client's type filter is in their vocabulary and is mirrored here.
func filterScope(actor ledger.Actor, filter LedgerFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !actor.IsAdmin() {
			db = db.Where("user_id = ?", actor.UserID)
		} else if filter.UserID != "" {
			db = db.Where("user_id = ?", filter.UserID)
		}
		if filter.FromDate != nil {
			db = db.Where("transaction_date >= ?", filter.FromDate.UTC())
		}
		if filter.ToDate != nil {
			db = db.Where("transaction_date <= ?", filter.ToDate.UTC())
		}
		if filter.Type != "" {
			db = db.Where("type = ?", ledger.StoredType(actor.Role, filter.Type))
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.ApplicationID != "" {
			db = db.Where("application_id = ?", filter.ApplicationID)
		}
		return db
	}
}

func validateFilter(filter LedgerFilter) error {
	if filter.Type != "" && !filter.Type.Valid() {
		return apperrors.ErrInvalidEntryType
	}
	if filter.Category != "" {
		if _, ok := ledger.Lookup(filter.Category); !ok {
			return apperrors.WithMessage(apperrors.ErrInvalidCategory, "unknown category")
		}
	}
	switch filter.Status {
	case "", models.EntryStatusPending, models.EntryStatusCompleted, models.EntryStatusCancelled:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be pending, completed or cancelled")
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must not be after to_date")
	}
	return nil
}

// findEntry loads an entry the actor may see. Entries owned by someone else
// are reported as not found.
func findEntry(ctx context.Context, db *gorm.DB, actor ledger.Actor, id string) (*models.LedgerEntry, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrLedgerEntryNotFound
	}

	var entry models.LedgerEntry
	if err := db.WithContext(ctx).Preload("Reconciliation").First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !actor.CanAccess(entry.UserID) {
		return nil, apperrors.ErrLedgerEntryNotFound
	}
	return &entry, nil
}

// transitionPending moves an entry out of pending with a conditional update.
func transitionPending(ctx context.Context, db *gorm.DB, id string, to models.EntryStatus) error {
	res := db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("id = ? AND status = ?", id, models.EntryStatusPending).
		Update("status", to)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidStatusTransition
	}
	return nil
}

// resolveOwner returns the user an entry is booked against. Clients always
// own what they create; admins may name any existing user.
func resolveOwner(ctx context.Context, db *gorm.DB, actor ledger.Actor, requested string) (string, error) {
	if !actor.IsAdmin() || requested == "" || requested == actor.UserID {
		return actor.UserID, nil
	}
	if !uuid.IsValid(requested) {
		return "", apperrors.ErrUserNotFound
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", requested).Count(&count).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return "", apperrors.ErrUserNotFound
	}
	return requested, nil
}

// checkApplication verifies an optional application reference. Clients may
// only reference their own applications. An empty id clears the reference.
func checkApplication(ctx context.Context, db *gorm.DB, actor ledger.Actor, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	if !uuid.IsValid(*id) {
		return nil, apperrors.ErrApplicationNotFound
	}

	var app models.Application
	if err := db.WithContext(ctx).Select("id", "user_id").First(&app, "id = ?", *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !actor.IsAdmin() && app.UserID != actor.UserID {
		return nil, apperrors.ErrApplicationNotFound
	}
	return &app.ID, nil
}

// validateAmount accepts positive amounts with at most two decimal places,
// the precision of the amount column.
func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.Equal(amount.Round(amountScale)) {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 2 decimal places")
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return amount.Round(amountScale), nil
}

func validateAmountAndDescription(amount decimal.Decimal, description string) (decimal.Decimal, string, error) {
	amount, err := validateAmount(amount)
	if err != nil {
		return decimal.Zero, "", err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return decimal.Zero, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return decimal.Zero, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 500 characters")
	}
	return amount, description, nil
}

func placementError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrUnknownType):
		return apperrors.ErrInvalidEntryType
	case errors.Is(err, ledger.ErrUnknownCategory):
		return apperrors.WithMessage(apperrors.ErrInvalidCategory, "unknown category")
	default:
		return apperrors.ErrInvalidCategory
	}
}

func transactionDateOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func auditChanges(updates map[string]interface{}) map[string]interface{} {
	changes := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if d, ok := v.(decimal.Decimal); ok {
			v = d.String()
		}
		changes[k] = v
	}
	return changes
}
