package market

import "errors"

// Absence of configuration is recoverable and reported as a plain error
// value; invariant violations (negative tenors, bumping a tenor that was
// never configured) indicate a defect in upstream validation.
var (
	ErrNegativeTenor = errors.New("tenor must be non-negative")
	ErrUnknownTenor  = errors.New("tenor not configured on curve")
	ErrMissingQuote  = errors.New("no spot quote for currency")
)
