package ledger

import (
	"appledger/internal/models"
)

// Category is a stored ledger category bound to the direction it belongs to.
// The only implementations are AdminCategory and ClientDerivedCategory, so a
// Category value always describes a valid type/category pairing.
type Category interface {
	Value() models.LedgerCategory
	Direction() models.EntryType
	ClientDerived() bool

	sealed()
}

// AdminCategory is a category the operator books directly.
type AdminCategory struct {
	value     models.LedgerCategory
	direction models.EntryType
}

func (c AdminCategory) Value() models.LedgerCategory { return c.value }
func (c AdminCategory) Direction() models.EntryType  { return c.direction }
func (c AdminCategory) ClientDerived() bool          { return false }
func (AdminCategory) sealed()                        {}

// ClientDerivedCategory is produced when a client books a movement in their
// own vocabulary and it is mirrored onto the operator's ledger.
type ClientDerivedCategory struct {
	value     models.LedgerCategory
	direction models.EntryType
}

func (c ClientDerivedCategory) Value() models.LedgerCategory { return c.value }
func (c ClientDerivedCategory) Direction() models.EntryType  { return c.direction }
func (c ClientDerivedCategory) ClientDerived() bool          { return true }
func (ClientDerivedCategory) sealed()                        {}

var (
	DevelopmentFee  Category = AdminCategory{models.CategoryDevelopmentFee, models.EntryTypeIncome}
	OtherIncome     Category = AdminCategory{models.CategoryOtherIncome, models.EntryTypeIncome}
	AccountPurchase Category = AdminCategory{models.CategoryAccountPurchase, models.EntryTypeExpense}
	OtherExpense    Category = AdminCategory{models.CategoryOtherExpense, models.EntryTypeExpense}

	// UserPayment is a client paying the operator.
	UserPayment Category = ClientDerivedCategory{models.CategoryUserPayment, models.EntryTypeIncome}
	// UserIncome is the operator paying a client.
	UserIncome Category = ClientDerivedCategory{models.CategoryUserIncome, models.EntryTypeExpense}
)

var categories = map[models.LedgerCategory]Category{
	models.CategoryDevelopmentFee:  DevelopmentFee,
	models.CategoryOtherIncome:     OtherIncome,
	models.CategoryAccountPurchase: AccountPurchase,
	models.CategoryOtherExpense:    OtherExpense,
	models.CategoryUserPayment:     UserPayment,
	models.CategoryUserIncome:      UserIncome,
}

// Lookup returns the Category for a stored value.
func Lookup(value models.LedgerCategory) (Category, bool) {
	c, ok := categories[value]
	return c, ok
}

// DefaultCategory is what an admin entry gets when no category is supplied.
func DefaultCategory(t models.EntryType) Category {
	if t == models.EntryTypeExpense {
		return OtherExpense
	}
	return OtherIncome
}

// ResolveCategory binds a raw category to the given direction. An empty value
// resolves to the direction's default.
func ResolveCategory(t models.EntryType, raw models.LedgerCategory) (Category, error) {
	if !t.Valid() {
		return nil, ErrUnknownType
	}
	if raw == "" {
		return DefaultCategory(t), nil
	}
	c, ok := categories[raw]
	if !ok {
		return nil, ErrUnknownCategory
	}
	if c.Direction() != t {
		return nil, ErrCategoryMismatch
	}
	return c, nil
}

// CategoriesFor lists the categories valid for a direction, admin ones first.
func CategoriesFor(t models.EntryType) []Category {
	switch t {
	case models.EntryTypeIncome:
		return []Category{DevelopmentFee, OtherIncome, UserPayment}
	case models.EntryTypeExpense:
		return []Category{AccountPurchase, OtherExpense, UserIncome}
	}
	return nil
}
