// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"appledger/internal/ledger"
	"appledger/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	// Lets numeric tags such as gt=0 apply to decimal amounts.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("entry_type", validateEntryType)
	_ = v.RegisterValidation("entry_status", validateEntryStatus)
	_ = v.RegisterValidation("ledger_category", validateLedgerCategory)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateEntryType(fl validator.FieldLevel) bool {
	return models.EntryType(fl.Field().String()).Valid()
}

func validateEntryStatus(fl validator.FieldLevel) bool {
	switch models.EntryStatus(fl.Field().String()) {
	case models.EntryStatusPending, models.EntryStatusCompleted, models.EntryStatusCancelled:
		return true
	}
	return false
}

func validateLedgerCategory(fl validator.FieldLevel) bool {
	_, ok := ledger.Lookup(models.LedgerCategory(fl.Field().String()))
	return ok
}
