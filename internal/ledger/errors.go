package ledger

import "errors"

var (
	ErrInvalidInterval      = errors.New("invalid recurrence interval")
	ErrInvalidGoal          = errors.New("invalid retirement goal")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidKind          = errors.New("invalid transaction kind")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAccountKind   = errors.New("invalid account kind")
	ErrEmptyCategory        = errors.New("empty category")
	ErrEmptyAccountName     = errors.New("empty account name")
	ErrMissingDate          = errors.New("missing transaction date")
	ErrNotesTooLong         = errors.New("notes too long (max 500 characters)")
	ErrMultipleDefaults     = errors.New("more than one default account")
)

// IsValidation reports whether err comes from validating caller input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidInterval, ErrInvalidGoal, ErrInvalidAmount, ErrInvalidKind,
		ErrInvalidPaymentMethod, ErrInvalidAccountKind, ErrEmptyCategory,
		ErrEmptyAccountName, ErrMissingDate, ErrNotesTooLong, ErrMultipleDefaults,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
