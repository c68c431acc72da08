package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotPayable    = errors.New("order is not payable")
	ErrAmountMismatch     = errors.New("paid amount does not match")
)
