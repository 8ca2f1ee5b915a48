package actions

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDestinationNotFound = errors.New("destination account not found")
	ErrSourceNotFound      = errors.New("source account not found")
	ErrAccountNotOwned     = errors.New("source account does not belong to user")
	ErrSameAccount         = errors.New("source and destination are the same account")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrFraudBlocked        = errors.New("transfer flagged as suspicious and blocked")
	ErrDuplicateEmail      = errors.New("email already registered")
)
