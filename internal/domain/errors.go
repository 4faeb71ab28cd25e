package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")
	ErrCodeTaken       = errors.New("account code already in use")
	ErrAccountInUse    = errors.New("account is referenced by journal postings")
	ErrSameAccount     = errors.New("debit and credit accounts must differ")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRequest  = errors.New("invalid request")
)
