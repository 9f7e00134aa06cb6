// Package notify tells the operator about ledger events that happen without
// anyone watching, such as a bank transfer completing a payment request.
package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEvent describes a payment request completed by a bank transfer.
type PaymentEvent struct {
	EntryID          string
	UserID           string
	VerificationCode string
	ExternalID       string
	Gateway          string
	Amount           decimal.Decimal
	TransferAmount   decimal.Decimal
	Description      string
	CompletedAt      time.Time
}

// Notifier delivers operator notifications.
type Notifier interface {
	PaymentCompleted(ctx context.Context, event PaymentEvent) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) PaymentCompleted(context.Context, PaymentEvent) error { return nil }
