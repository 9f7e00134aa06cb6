package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"appledger/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a client user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("user%d@test.com", nextID()), models.UserRoleUser)
}

// CreateTestUserWithEmail creates a client user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.UserRoleUser)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("admin%d@test.com", nextID()), models.UserRoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestApplication creates an application owned by userID.
func CreateTestApplication(t *testing.T, db *gorm.DB, userID string) *models.Application {
	t.Helper()

	n := nextID()
	app := &models.Application{
		UserID:        userID,
		Name:          fmt.Sprintf("Test App %d", n),
		PackageName:   fmt.Sprintf("com.test.app%d", n),
		ChPlayAccount: "studio@test.com",
		Status:        models.ApplicationStatusPublished,
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateTestLedgerEntry creates a completed entry stored with the given
// admin-relative type and amount.
func CreateTestLedgerEntry(t *testing.T, db *gorm.DB, userID string, entryType models.EntryType, amount int64) *models.LedgerEntry {
	t.Helper()

	category := models.CategoryOtherIncome
	if entryType == models.EntryTypeExpense {
		category = models.CategoryOtherExpense
	}
	entry := &models.LedgerEntry{
		UserID:          userID,
		Type:            entryType,
		Category:        category,
		Amount:          decimal.NewFromInt(amount),
		Status:          models.EntryStatusCompleted,
		Description:     fmt.Sprintf("Test entry %d", nextID()),
		TransactionDate: time.Now(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test ledger entry: %v", err)
	}
	return entry
}

// CreateTestPendingEntry creates a pending payment request carrying code.
func CreateTestPendingEntry(t *testing.T, db *gorm.DB, userID, code string, amount int64) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		UserID:           userID,
		Type:             models.EntryTypeIncome,
		Category:         models.CategoryUserPayment,
		Amount:           decimal.NewFromInt(amount),
		Status:           models.EntryStatusPending,
		Description:      "Service fee",
		TransactionDate:  time.Now(),
		VerificationCode: &code,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test pending entry: %v", err)
	}
	return entry
}
