package ledger

import (
	"github.com/shopspring/decimal"

	"appledger/internal/models"
)

// Summary aggregates a set of entries for one viewer. Income and expense are
// labelled in the viewer's vocabulary and only count completed entries.
type Summary struct {
	TotalCount     int             `json:"total_count"`
	PendingCount   int             `json:"pending_count"`
	CompletedCount int             `json:"completed_count"`
	CancelledCount int             `json:"cancelled_count"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	Balance        decimal.Decimal `json:"balance"`
	Perspective    Perspective     `json:"perspective"`
}

// Summarize folds entries by their stored direction, then relabels the two
// sums for non-admin viewers. Balance is income minus expense as the viewer
// sees them.
func Summarize(entries []models.LedgerEntry, role models.UserRole) Summary {
	storedIncome := decimal.Zero
	storedExpense := decimal.Zero
	s := Summary{Perspective: PerspectiveFor(role)}

	for _, e := range entries {
		s.TotalCount++
		switch e.Status {
		case models.EntryStatusPending:
			s.PendingCount++
			continue
		case models.EntryStatusCancelled:
			s.CancelledCount++
			continue
		}
		s.CompletedCount++
		if e.Type == models.EntryTypeIncome {
			storedIncome = storedIncome.Add(e.Amount)
		} else {
			storedExpense = storedExpense.Add(e.Amount)
		}
	}

	if role.IsAdmin() {
		s.TotalIncome, s.TotalExpense = storedIncome, storedExpense
	} else {
		s.TotalIncome, s.TotalExpense = storedExpense, storedIncome
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
