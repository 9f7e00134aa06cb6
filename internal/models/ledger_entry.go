package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"appledger/internal/uuid"
)

// EntryType is the admin-relative direction of a ledger entry: income means
// money flows to the operator, expense means money flows to the owning user.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// Valid reports whether t is one of the two directions.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// Opposite returns the mirrored direction.
func (t EntryType) Opposite() EntryType {
	if t == EntryTypeIncome {
		return EntryTypeExpense
	}
	return EntryTypeIncome
}

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// IsFinal reports whether no further status transition is allowed.
func (s EntryStatus) IsFinal() bool {
	return s == EntryStatusCompleted || s == EntryStatusCancelled
}

// LedgerCategory is the stored category tag of an entry.
type LedgerCategory string

const (
	CategoryDevelopmentFee  LedgerCategory = "development_fee"
	CategoryOtherIncome     LedgerCategory = "other_income"
	CategoryAccountPurchase LedgerCategory = "account_purchase"
	CategoryOtherExpense    LedgerCategory = "other_expense"

	// Written only through the client side of the ledger.
	CategoryUserPayment LedgerCategory = "user_payment"
	CategoryUserIncome  LedgerCategory = "user_income"
)

// LedgerEntry is one financial movement between the operator and a user,
// always stored from the operator's point of view.
type LedgerEntry struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	ApplicationID    *string         `gorm:"type:uuid;index" json:"application_id,omitempty"`
	Type             EntryType       `gorm:"size:16;not null;index" json:"type"`
	Category         LedgerCategory  `gorm:"size:32;not null" json:"category"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status           EntryStatus     `gorm:"size:16;not null;index" json:"status"`
	Description      string          `gorm:"size:500;not null" json:"description"`
	TransactionDate  time.Time       `gorm:"not null;index" json:"transaction_date"`
	VerificationCode *string         `gorm:"size:32;uniqueIndex" json:"verification_code,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Reconciliation *LedgerReconciliation `gorm:"foreignKey:EntryID" json:"reconciliation,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new entries
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	return nil
}

// FromPaymentRequest reports whether the entry was created by the QR flow.
func (e *LedgerEntry) FromPaymentRequest() bool {
	return e.VerificationCode != nil && *e.VerificationCode != ""
}

// LedgerReconciliation is the bank-side evidence written when a payment
// webhook completes a pending entry. It is created once and never updated.
type LedgerReconciliation struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	EntryID            string          `gorm:"type:uuid;not null;uniqueIndex" json:"entry_id"`
	Provider           string          `gorm:"size:32;not null;uniqueIndex:uq_reconciliation_external" json:"provider"`
	ExternalID         string          `gorm:"size:64;not null;uniqueIndex:uq_reconciliation_external" json:"external_id"`
	Gateway            string          `gorm:"size:64" json:"gateway"`
	AccountNumber      string          `gorm:"size:64" json:"account_number"`
	BankCode           string          `gorm:"size:64" json:"bank_code,omitempty"`
	SubAccount         string          `gorm:"size:64" json:"sub_account,omitempty"`
	ReferenceCode      string          `gorm:"size:64" json:"reference_code,omitempty"`
	TransferType       string          `gorm:"size:8" json:"transfer_type"`
	TransferAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"transfer_amount"`
	Accumulated        decimal.Decimal `gorm:"type:numeric(18,2)" json:"accumulated"`
	Content            string          `json:"content"`
	Description        string          `json:"description,omitempty"`
	BankTransactionAt  *time.Time      `json:"bank_transaction_at,omitempty"`
	RawTransactionDate string          `gorm:"size:64" json:"raw_transaction_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new reconciliation rows
func (r *LedgerReconciliation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
