package services

import (
	"context"
	"encoding/json"

	"appledger/internal/logger"
	"appledger/internal/models"

	"gorm.io/gorm"
)

// Audit actions.
const (
	AuditActionCreateEntry     = "LEDGER_ENTRY_CREATED"
	AuditActionUpdateEntry     = "LEDGER_ENTRY_UPDATED"
	AuditActionCancelEntry     = "LEDGER_ENTRY_CANCELLED"
	AuditActionCompleteEntry   = "LEDGER_ENTRY_COMPLETED"
	AuditActionDeleteEntry     = "LEDGER_ENTRY_DELETED"
	AuditActionPaymentRequest  = "PAYMENT_REQUEST_CREATED"
	AuditActionPaymentReceived = "PAYMENT_RECONCILED"

	auditResourceEntry = "ledger_entry"

	// SePayActor is the audit actor for changes made by the payment webhook.
	SePayActor = "webhook:sepay"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and swallowed; the audited
// operation has already happened.
func (s *auditService) Log(ctx context.Context, actorID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	row := &models.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Named("audit").Errorw("failed to write audit row",
			"error", err,
			"actor_id", actorID,
			"action", action,
			"resource_id", resourceID,
		)
	}
}

func encodeChanges(action string, changes map[string]interface{}) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Named("audit").Warnw("unencodable audit changes", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
