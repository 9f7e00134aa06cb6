package ledger

import "errors"

var (
	ErrUnknownType      = errors.New("ledger: entry type must be income or expense")
	ErrUnknownCategory  = errors.New("ledger: unknown category")
	ErrCategoryMismatch = errors.New("ledger: category does not belong to the entry type")
)
