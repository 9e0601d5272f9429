package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrItemNotFound      = errors.New("catalog item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

var (
	ErrModifierSelectionRequired = validationError("modifier selection required")
	ErrUnknownModifier           = validationError("unknown modifier")
	ErrUnknownModifierOption     = validationError("unknown modifier option")
	ErrDuplicateModifier         = validationError("modifier selected more than once")
	ErrInvalidServiceType        = validationError("invalid service type")
	ErrInvalidDiscountType       = validationError("invalid discount type")
	ErrCurrencyMismatch          = validationError("currency does not match the cart")
	ErrOrderNotOpen              = validationError("order is not open")
)

type valError struct {
	msg string
}

func validationError(msg string) error {
	return &valError{msg: msg}
}

func (e *valError) Error() string {
	return e.msg
}

func (e *valError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err was caused by rejected user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
