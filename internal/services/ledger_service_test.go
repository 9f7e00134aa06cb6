package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"appledger/internal/ledger"
	"appledger/internal/models"
	"appledger/internal/pagination"
	"appledger/internal/testutil"
)

func newTestLedgerService(db *gorm.DB) LedgerServicer {
	return NewLedgerService(db, NewAuditService(db))
}

func actorOf(u *models.User) ledger.Actor {
	return ledger.Actor{UserID: u.ID, Role: u.Role}
}

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func loadEntry(t *testing.T, db *gorm.DB, id string) models.LedgerEntry {
	t.Helper()
	var e models.LedgerEntry
	if err := db.Preload("Reconciliation").First(&e, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to load entry %s: %v", id, err)
	}
	return e
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("admin_entry_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		client := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, client.ID)
		date := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

		view, err := svc.CreateEntry(ctx, actorOf(admin), CreateEntryInput{
			Type:            models.EntryTypeIncome,
			Category:        models.CategoryDevelopmentFee,
			Amount:          decimal.RequireFromString("1250000.50"),
			Description:     "Build for release 2.1",
			TransactionDate: &date,
			ApplicationID:   &app.ID,
			UserID:          client.ID,
		})
		testutil.AssertNoError(t, err)

		got, err := svc.GetEntryByID(ctx, actorOf(admin), view.ID)
		testutil.AssertNoError(t, err)

		if got.UserID != client.ID {
			t.Errorf("owner = %s, want %s", got.UserID, client.ID)
		}
		if got.Type != models.EntryTypeIncome || got.Category != models.CategoryDevelopmentFee {
			t.Errorf("stored as %s/%s", got.Type, got.Category)
		}
		if !got.Amount.Equal(decimal.RequireFromString("1250000.50")) {
			t.Errorf("amount = %s", got.Amount)
		}
		if got.Status != models.EntryStatusCompleted {
			t.Errorf("status = %s, want completed", got.Status)
		}
		if got.Description != "Build for release 2.1" {
			t.Errorf("description = %q", got.Description)
		}
		if !got.TransactionDate.Equal(date) {
			t.Errorf("transaction date = %s, want %s", got.TransactionDate, date)
		}
		if got.ApplicationID == nil || *got.ApplicationID != app.ID {
			t.Errorf("application = %v, want %s", got.ApplicationID, app.ID)
		}
		if got.VerificationCode != nil {
			t.Errorf("manual entries should not carry a verification code")
		}
	})

	t.Run("admin_category_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)

		view, err := svc.CreateEntry(ctx, actorOf(admin), CreateEntryInput{
			Type:        models.EntryTypeExpense,
			Amount:      decimal.NewFromInt(25),
			Description: "Developer account",
		})
		testutil.AssertNoError(t, err)
		if view.Category != models.CategoryOtherExpense {
			t.Errorf("category = %s, want other_expense", view.Category)
		}
		if view.UserID != admin.ID {
			t.Errorf("owner should default to the admin")
		}
	})

	t.Run("client_received_money_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)

		view, err := svc.CreateEntry(ctx, actorOf(client), CreateEntryInput{
			Type:        models.EntryTypeIncome,
			Category:    models.CategoryDevelopmentFee,
			Amount:      decimal.NewFromInt(300000),
			Description: "Ad revenue share",
		})
		testutil.AssertNoError(t, err)

		stored := loadEntry(t, db, view.ID)
		if stored.Type != models.EntryTypeExpense || stored.Category != models.CategoryUserIncome {
			t.Errorf("stored as %s/%s, want expense/user_income", stored.Type, stored.Category)
		}
		if view.Type != models.EntryTypeIncome {
			t.Errorf("client view type = %s, want income", view.Type)
		}

		again, err := svc.GetEntryByID(ctx, actorOf(client), view.ID)
		testutil.AssertNoError(t, err)
		if again.Type != models.EntryTypeIncome {
			t.Errorf("client reads %s, want income", again.Type)
		}

		adminView, err := svc.GetEntryByID(ctx, actorOf(admin), view.ID)
		testutil.AssertNoError(t, err)
		if adminView.Type != models.EntryTypeExpense {
			t.Errorf("admin reads %s, want expense", adminView.Type)
		}
	})

	t.Run("client_owner_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		view, err := svc.CreateEntry(ctx, actorOf(client), CreateEntryInput{
			Type:        models.EntryTypeExpense,
			Amount:      decimal.NewFromInt(10),
			Description: "Paid invoice",
			UserID:      other.ID,
		})
		testutil.AssertNoError(t, err)
		if view.UserID != client.ID {
			t.Errorf("owner = %s, want the client", view.UserID)
		}
	})

	invalid := []struct {
		name  string
		input CreateEntryInput
		code  string
	}{
		{"zero_amount", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.Zero, Description: "x"}, "INVALID_INPUT"},
		{"negative_amount", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(-1), Description: "x"}, "INVALID_INPUT"},
		{"sub_cent_amount", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.RequireFromString("0.001"), Description: "tiny"}, "INVALID_INPUT"},
		{"three_decimals", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.RequireFromString("10.005"), Description: "x"}, "INVALID_INPUT"},
		{"empty_description", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(1), Description: "   "}, "INVALID_INPUT"},
		{"long_description", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(1), Description: strings.Repeat("a", 501)}, "INVALID_INPUT"},
		{"unknown_type", CreateEntryInput{Type: "refund", Amount: decimal.NewFromInt(1), Description: "x"}, "INVALID_ENTRY_TYPE"},
		{"category_mismatch", CreateEntryInput{Type: models.EntryTypeIncome, Category: models.CategoryAccountPurchase, Amount: decimal.NewFromInt(1), Description: "x"}, "INVALID_CATEGORY"},
		{"unknown_category", CreateEntryInput{Type: models.EntryTypeIncome, Category: "salary", Amount: decimal.NewFromInt(1), Description: "x"}, "INVALID_CATEGORY"},
		{"unknown_owner", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(1), Description: "x", UserID: "0190f3c2-0000-7000-8000-00000000dead"}, "USER_NOT_FOUND"},
		{"unknown_application", CreateEntryInput{Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(1), Description: "x", ApplicationID: strPtr("0190f3c2-0000-7000-8000-00000000beef")}, "APPLICATION_NOT_FOUND"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := newTestLedgerService(db)
			admin := testutil.CreateTestAdmin(t, db)

			_, err := svc.CreateEntry(ctx, actorOf(admin), tt.input)
			testutil.AssertAppError(t, err, tt.code)
		})
	}

	t.Run("client_foreign_application", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, other.ID)

		_, err := svc.CreateEntry(ctx, actorOf(client), CreateEntryInput{
			Type:          models.EntryTypeExpense,
			Amount:        decimal.NewFromInt(1),
			Description:   "x",
			ApplicationID: &app.ID,
		})
		testutil.AssertAppError(t, err, "APPLICATION_NOT_FOUND")
	})
}

func TestGetEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("client_sees_only_own_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)
		testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeExpense, 200)
		testutil.CreateTestLedgerEntry(t, db, other.ID, models.EntryTypeIncome, 300)

		page, err := svc.GetEntries(ctx, actorOf(client), pagination.PageRequest{}, LedgerFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 entries, got %d", page.TotalItems)
		}
		for _, e := range page.Data {
			if e.UserID != client.ID {
				t.Errorf("client received entry of %s", e.UserID)
			}
			if e.Perspective != ledger.PerspectiveClient {
				t.Errorf("perspective = %s", e.Perspective)
			}
		}
	})

	t.Run("client_type_filter_in_own_vocabulary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)
		paidOut := testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeExpense, 200)

		page, err := svc.GetEntries(ctx, actorOf(client), pagination.PageRequest{}, LedgerFilter{Type: models.EntryTypeIncome})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Fatalf("expected 1 entry, got %d", page.TotalItems)
		}
		if page.Data[0].ID != paidOut.ID || page.Data[0].Type != models.EntryTypeIncome {
			t.Errorf("expected the stored expense shown as income, got %s/%s", page.Data[0].ID, page.Data[0].Type)
		}
	})

	t.Run("admin_filters_by_owner_and_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		client := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)
		testutil.CreateTestPendingEntry(t, db, client.ID, "PEND0001", 500)
		testutil.CreateTestLedgerEntry(t, db, other.ID, models.EntryTypeIncome, 300)

		all, err := svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{})
		testutil.AssertNoError(t, err)
		if all.TotalItems != 3 {
			t.Errorf("admin should see 3 entries, got %d", all.TotalItems)
		}

		page, err := svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{UserID: client.ID, Status: models.EntryStatusPending})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].Status != models.EntryStatusPending {
			t.Errorf("expected the single pending entry, got %d", page.TotalItems)
		}
	})

	t.Run("date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)

		for _, d := range []time.Time{
			time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		} {
			date := d
			_, err := svc.CreateEntry(ctx, actorOf(admin), CreateEntryInput{
				Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(1), Description: "x", TransactionDate: &date,
			})
			testutil.AssertNoError(t, err)
		}

		from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)
		page, err := svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 entry in February, got %d", page.TotalItems)
		}

		_, err = svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{FromDate: &to, ToDate: &from})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		for i := 0; i < 5; i++ {
			testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, int64(100+i))
		}

		page, err := svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{Page: 2, PageSize: 2}, LedgerFilter{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 2 || page.TotalItems != 5 || page.TotalPages != 3 {
			t.Errorf("unexpected page: %d items, total %d, pages %d", len(page.Data), page.TotalItems, page.TotalPages)
		}
	})

	t.Run("invalid_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{Type: "transfer"})
		testutil.AssertAppError(t, err, "INVALID_ENTRY_TYPE")
		_, err = svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{Status: "refunded"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.GetEntries(ctx, actorOf(admin), pagination.PageRequest{}, LedgerFilter{Category: "salary"})
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})
}

func TestGetEntryByID(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestLedgerService(db)
	owner := testutil.CreateTestUser(t, db)
	stranger := testutil.CreateTestUser(t, db)
	entry := testutil.CreateTestLedgerEntry(t, db, owner.ID, models.EntryTypeIncome, 100)

	_, err := svc.GetEntryByID(ctx, actorOf(stranger), entry.ID)
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")

	_, err = svc.GetEntryByID(ctx, actorOf(owner), "not-a-uuid")
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")

	_, err = svc.GetEntryByID(ctx, actorOf(owner), "0190f3c2-0000-7000-8000-00000000dead")
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
}

func TestUpdateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("admin_updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 100)

		view, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{
			Amount:      decPtr(250),
			Description: strPtr("Corrected"),
		})
		testutil.AssertNoError(t, err)
		if !view.Amount.Equal(decimal.NewFromInt(250)) || view.Description != "Corrected" {
			t.Errorf("update not applied: %s %q", view.Amount, view.Description)
		}
	})

	t.Run("sub_cent_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 100)

		tiny := decimal.RequireFromString("0.001")
		_, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Amount: &tiny})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		stored := loadEntry(t, db, entry.ID)
		if !stored.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("amount changed to %s", stored.Amount)
		}
	})

	t.Run("two_decimal_amount_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 100)

		cents := decimal.RequireFromString("0.01")
		view, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Amount: &cents})
		testutil.AssertNoError(t, err)
		if !view.Amount.Equal(cents) {
			t.Errorf("amount = %s, want 0.01", view.Amount)
		}
	})

	t.Run("admin_type_change_resets_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 100)

		expense := models.EntryTypeExpense
		view, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Type: &expense})
		testutil.AssertNoError(t, err)
		if view.Type != models.EntryTypeExpense || view.Category != models.CategoryOtherExpense {
			t.Errorf("got %s/%s, want expense/other_expense", view.Type, view.Category)
		}

		mismatch := models.CategoryDevelopmentFee
		_, err = svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Category: &mismatch})
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})

	t.Run("client_type_change_is_mirrored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)

		created, err := svc.CreateEntry(ctx, actorOf(client), CreateEntryInput{
			Type: models.EntryTypeIncome, Amount: decimal.NewFromInt(10), Description: "Earned",
		})
		testutil.AssertNoError(t, err)

		paid := models.EntryTypeExpense
		view, err := svc.UpdateEntry(ctx, actorOf(client), created.ID, UpdateEntryInput{Type: &paid})
		testutil.AssertNoError(t, err)
		if view.Type != models.EntryTypeExpense {
			t.Errorf("client view type = %s, want expense", view.Type)
		}
		stored := loadEntry(t, db, created.ID)
		if stored.Type != models.EntryTypeIncome || stored.Category != models.CategoryUserPayment {
			t.Errorf("stored as %s/%s, want income/user_payment", stored.Type, stored.Category)
		}
	})

	t.Run("client_cannot_edit_admin_booked_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		client := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)

		_, err := svc.UpdateEntry(ctx, actorOf(client), entry.ID, UpdateEntryInput{Amount: decPtr(1)})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("cancelled_is_read_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestPendingEntry(t, db, admin.ID, "CANC0001", 100)
		_, err := svc.CancelEntry(ctx, actorOf(admin), entry.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Description: strPtr("x")})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_EDITABLE")
	})

	t.Run("payment_request_locks_amount_and_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestPendingEntry(t, db, admin.ID, "LOCK0001", 500000)

		_, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Amount: decPtr(1)})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_EDITABLE")

		expense := models.EntryTypeExpense
		_, err = svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Type: &expense})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_EDITABLE")

		view, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Amount: decPtr(500000), Description: strPtr("Renamed")})
		testutil.AssertNoError(t, err)
		if view.Description != "Renamed" {
			t.Errorf("description = %q", view.Description)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.UpdateEntry(ctx, actorOf(admin), "0190f3c2-0000-7000-8000-00000000dead", UpdateEntryInput{Description: strPtr("x")})
		testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")
	})

	t.Run("invalid_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestLedgerService(db)
		admin := testutil.CreateTestAdmin(t, db)
		entry := testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 100)

		_, err := svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Amount: decPtr(0)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.UpdateEntry(ctx, actorOf(admin), entry.ID, UpdateEntryInput{Description: strPtr("")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCancelEntry(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestLedgerService(db)
	client := testutil.CreateTestUser(t, db)
	stranger := testutil.CreateTestUser(t, db)
	entry := testutil.CreateTestPendingEntry(t, db, client.ID, "STAL0001", 100)

	_, err := svc.CancelEntry(ctx, actorOf(stranger), entry.ID)
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")

	view, err := svc.CancelEntry(ctx, actorOf(client), entry.ID)
	testutil.AssertNoError(t, err)
	if view.Status != models.EntryStatusCancelled {
		t.Errorf("status = %s, want cancelled", view.Status)
	}

	_, err = svc.CancelEntry(ctx, actorOf(client), entry.ID)
	testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")

	completed := testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)
	_, err = svc.CancelEntry(ctx, actorOf(client), completed.ID)
	testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")
}

func TestCompleteEntry(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestLedgerService(db)
	admin := testutil.CreateTestAdmin(t, db)
	client := testutil.CreateTestUser(t, db)
	entry := testutil.CreateTestPendingEntry(t, db, client.ID, "MANU0001", 100)

	_, err := svc.CompleteEntry(ctx, actorOf(client), entry.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	view, err := svc.CompleteEntry(ctx, actorOf(admin), entry.ID)
	testutil.AssertNoError(t, err)
	if view.Status != models.EntryStatusCompleted {
		t.Errorf("status = %s, want completed", view.Status)
	}
	if view.Reconciliation != nil {
		t.Error("manual completion must not write reconciliation data")
	}

	_, err = svc.CompleteEntry(ctx, actorOf(admin), entry.ID)
	testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestLedgerService(db)
	admin := testutil.CreateTestAdmin(t, db)
	client := testutil.CreateTestUser(t, db)
	entry := testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 100)

	err := svc.DeleteEntry(ctx, actorOf(client), entry.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	testutil.AssertNoError(t, svc.DeleteEntry(ctx, actorOf(admin), entry.ID))

	_, err = svc.GetEntryByID(ctx, actorOf(admin), entry.ID)
	testutil.AssertAppError(t, err, "LEDGER_ENTRY_NOT_FOUND")

	var audits int64
	db.Model(&models.AuditLog{}).Where("action = ? AND resource_id = ?", AuditActionDeleteEntry, entry.ID).Count(&audits)
	if audits != 1 {
		t.Errorf("expected 1 audit log, got %d", audits)
	}
}

func TestGetStatistics(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestLedgerService(db)
	admin := testutil.CreateTestAdmin(t, db)
	client := testutil.CreateTestUser(t, db)

	testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeIncome, 500000)
	testutil.CreateTestLedgerEntry(t, db, client.ID, models.EntryTypeExpense, 200000)
	testutil.CreateTestPendingEntry(t, db, client.ID, "STAT0001", 900000)
	testutil.CreateTestLedgerEntry(t, db, admin.ID, models.EntryTypeIncome, 1000)

	adminStats, err := svc.GetStatistics(ctx, actorOf(admin), LedgerFilter{UserID: client.ID})
	testutil.AssertNoError(t, err)
	if adminStats.TotalCount != 3 || adminStats.PendingCount != 1 {
		t.Errorf("admin counts = %d/%d", adminStats.TotalCount, adminStats.PendingCount)
	}
	if !adminStats.TotalIncome.Equal(decimal.NewFromInt(500000)) || !adminStats.Balance.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("admin income %s balance %s", adminStats.TotalIncome, adminStats.Balance)
	}

	clientStats, err := svc.GetStatistics(ctx, actorOf(client), LedgerFilter{UserID: admin.ID})
	testutil.AssertNoError(t, err)
	if clientStats.TotalCount != 3 {
		t.Errorf("client should only count own entries, got %d", clientStats.TotalCount)
	}
	if !clientStats.TotalIncome.Equal(decimal.NewFromInt(200000)) || !clientStats.TotalExpense.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("client income %s expense %s", clientStats.TotalIncome, clientStats.TotalExpense)
	}
	if !clientStats.Balance.Equal(decimal.NewFromInt(-300000)) {
		t.Errorf("client balance = %s", clientStats.Balance)
	}
	if clientStats.Perspective != ledger.PerspectiveClient {
		t.Errorf("perspective = %s", clientStats.Perspective)
	}
}
