package models

import "errors"

// Domain errors shared by repositories and services. Handlers translate
// these into HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCard        = errors.New("invalid card number")
	ErrNotOwner           = errors.New("not the owner of this resource")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTransactionFailed  = errors.New("transaction failed")
)
