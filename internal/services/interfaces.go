package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"appledger/internal/ledger"
	"appledger/internal/models"
	"appledger/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	EnsureAdmin(ctx context.Context, email, password string) (*models.User, error)
}

// LedgerFilter holds optional filter parameters for listing ledger entries.
// Type is in the caller's vocabulary. UserID is honoured for admins only.
type LedgerFilter struct {
	FromDate      *time.Time
	ToDate        *time.Time
	Type          models.EntryType
	Status        models.EntryStatus
	Category      models.LedgerCategory
	ApplicationID string
	UserID        string
}

// CreateEntryInput is a new ledger entry as submitted by the caller. Type is
// in the caller's vocabulary; UserID and Category are honoured for admins only.
type CreateEntryInput struct {
	Type            models.EntryType
	Category        models.LedgerCategory
	Amount          decimal.Decimal
	Description     string
	TransactionDate *time.Time
	ApplicationID   *string
	UserID          string
}

// UpdateEntryInput carries the fields to change; nil fields are left alone.
type UpdateEntryInput struct {
	Type            *models.EntryType
	Category        *models.LedgerCategory
	Amount          *decimal.Decimal
	Description     *string
	TransactionDate *time.Time
	ApplicationID   *string
}

// LedgerServicer defines the contract for ledger entry business logic. Every
// entry returned is already rendered for the calling actor.
type LedgerServicer interface {
	CreateEntry(ctx context.Context, actor ledger.Actor, input CreateEntryInput) (*ledger.EntryView, error)
	GetEntries(ctx context.Context, actor ledger.Actor, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[ledger.EntryView], error)
	GetEntryByID(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error)
	UpdateEntry(ctx context.Context, actor ledger.Actor, id string, input UpdateEntryInput) (*ledger.EntryView, error)
	CancelEntry(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error)
	CompleteEntry(ctx context.Context, actor ledger.Actor, id string) (*ledger.EntryView, error)
	DeleteEntry(ctx context.Context, actor ledger.Actor, id string) error
	GetStatistics(ctx context.Context, actor ledger.Actor, filter LedgerFilter) (*ledger.Summary, error)
}

// PaymentServicer creates QR payment requests.
type PaymentServicer interface {
	CreatePaymentRequest(ctx context.Context, actor ledger.Actor, input PaymentRequestInput) (*PaymentRequest, error)
}

// WebhookServicer reconciles bank transfer notifications against pending
// payment requests.
type WebhookServicer interface {
	HandleSePayNotification(ctx context.Context, n SePayNotification) (*WebhookResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, actorID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
