package models

// ApplicationStatus is the publishing state of a tracked mobile application.
type ApplicationStatus string

const (
	ApplicationStatusDevelopment ApplicationStatus = "development"
	ApplicationStatusPublished   ApplicationStatus = "published"
	ApplicationStatusSuspended   ApplicationStatus = "suspended"
)

// Application is a mobile app built for a client and published under one of
// the operator's CHPlay (Google Play) developer accounts.
type Application struct {
	Base
	UserID        string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string            `gorm:"not null" json:"name"`
	PackageName   string            `gorm:"uniqueIndex" json:"package_name"`
	ChPlayAccount string            `json:"chplay_account,omitempty"`
	Status        ApplicationStatus `gorm:"size:16;not null;default:development" json:"status"`
}
