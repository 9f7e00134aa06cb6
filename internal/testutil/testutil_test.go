package testutil_test

import (
	"testing"

	"appledger/internal/errors"
	"appledger/internal/models"
	"appledger/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "applications", "ledger_entries", "ledger_reconciliations", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	testutil.CreateTestUser(t, first)

	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected a fresh database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	if user.Role != models.UserRoleUser {
		t.Errorf("expected user role, got %s", user.Role)
	}

	admin := testutil.CreateTestAdmin(t, db)
	if !admin.Role.IsAdmin() {
		t.Errorf("expected admin role, got %s", admin.Role)
	}

	app := testutil.CreateTestApplication(t, db, user.ID)
	if app.UserID != user.ID {
		t.Errorf("expected application owned by %s, got %s", user.ID, app.UserID)
	}

	entry := testutil.CreateTestLedgerEntry(t, db, user.ID, models.EntryTypeExpense, 1000)
	if entry.Category != models.CategoryOtherExpense || entry.Status != models.EntryStatusCompleted {
		t.Errorf("unexpected entry %s/%s", entry.Category, entry.Status)
	}

	pending := testutil.CreateTestPendingEntry(t, db, user.ID, "ABCD1234", 500000)
	var reloaded models.LedgerEntry
	if err := db.First(&reloaded, "id = ?", pending.ID).Error; err != nil {
		t.Fatalf("failed to reload pending entry: %v", err)
	}
	if reloaded.VerificationCode == nil || *reloaded.VerificationCode != "ABCD1234" {
		t.Errorf("verification code not stored")
	}
	if !reloaded.Amount.Equal(pending.Amount) {
		t.Errorf("amount = %s, want %s", reloaded.Amount, pending.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrLedgerEntryNotFound, "custom message")
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
