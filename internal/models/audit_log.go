package models

// AuditLog records sensitive ledger operations for security and compliance.
// ActorID is a user id, or a system actor such as "webhook:sepay".
type AuditLog struct {
	Base
	ActorID      string `gorm:"size:64;not null;index" json:"actor_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"size:64" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
