// Package ledger holds the pure bookkeeping rules of the app ledger.
//
// Entries are always stored from the operator's (admin's) point of view. A
// client reads and writes the mirror image of that record: what the operator
// books as income the client sees as an expense, and the reverse. Everything
// in this package is a plain function of its inputs so the translation can be
// tested without a database.
package ledger

import (
	"appledger/internal/models"
)

// Perspective labels which side of the ledger a view was produced for.
type Perspective string

const (
	PerspectiveAdmin  Perspective = "admin"
	PerspectiveClient Perspective = "client"
)

// Actor is the caller of a ledger operation. ClientIP is recorded in the
// audit trail only.
type Actor struct {
	UserID   string
	Role     models.UserRole
	ClientIP string
}

// IsAdmin reports whether the actor sees the operator's books.
func (a Actor) IsAdmin() bool { return a.Role.IsAdmin() }

// CanAccess reports whether the actor may see an entry owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

// Perspective returns the view the actor gets.
func (a Actor) Perspective() Perspective {
	return PerspectiveFor(a.Role)
}

// PerspectiveFor maps a role onto its ledger perspective.
func PerspectiveFor(role models.UserRole) Perspective {
	if role.IsAdmin() {
		return PerspectiveAdmin
	}
	return PerspectiveClient
}

// Placement is where a write lands on the operator's books.
type Placement struct {
	Type     models.EntryType
	Category Category
}

// ResolveWrite converts a submitted direction into its stored placement.
//
// Admins write stored values directly; the category defaults per direction
// and must belong to it. Clients write in their own vocabulary: income means
// "I earned" and is booked as expense/user_income, expense means "I paid"
// and is booked as income/user_payment. A client-supplied category is ignored.
func ResolveWrite(actor Actor, submitted models.EntryType, category models.LedgerCategory) (Placement, error) {
	if !submitted.Valid() {
		return Placement{}, ErrUnknownType
	}
	if actor.IsAdmin() {
		c, err := ResolveCategory(submitted, category)
		if err != nil {
			return Placement{}, err
		}
		return Placement{Type: submitted, Category: c}, nil
	}
	if submitted == models.EntryTypeIncome {
		return Placement{Type: models.EntryTypeExpense, Category: UserIncome}, nil
	}
	return Placement{Type: models.EntryTypeIncome, Category: UserPayment}, nil
}

// PaymentRequestPlacement is the placement of a QR payment request. Money
// always flows to the operator; only the category depends on who asked.
func PaymentRequestPlacement(actor Actor) Placement {
	if actor.IsAdmin() {
		return Placement{Type: models.EntryTypeIncome, Category: OtherIncome}
	}
	return Placement{Type: models.EntryTypeIncome, Category: UserPayment}
}

// ViewType returns the type a viewer with the given role sees for a stored type.
func ViewType(role models.UserRole, stored models.EntryType) models.EntryType {
	if role.IsAdmin() {
		return stored
	}
	return stored.Opposite()
}

// StoredType converts a type filter in the viewer's vocabulary into the stored
// type to query. Empty stays empty.
func StoredType(role models.UserRole, viewed models.EntryType) models.EntryType {
	if viewed == "" || role.IsAdmin() {
		return viewed
	}
	return viewed.Opposite()
}

// EntryView is a ledger entry as presented to one viewer. Type is expressed in
// the viewer's vocabulary; every other field is the stored value.
type EntryView struct {
	models.LedgerEntry
	Type        models.EntryType `json:"type"`
	Perspective Perspective      `json:"perspective"`
}

// View renders an entry for a viewer.
func View(role models.UserRole, e models.LedgerEntry) EntryView {
	return EntryView{
		LedgerEntry: e,
		Type:        ViewType(role, e.Type),
		Perspective: PerspectiveFor(role),
	}
}
