package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCustomerNotFound indicates that a referenced customer does not exist.
// It wraps ErrNotFound so callers can match either.
var ErrCustomerNotFound = wrap(ErrNotFound, "customer not found")

// ErrAccountNotFound indicates that one or more referenced accounts do not exist.
var ErrAccountNotFound = wrap(ErrNotFound, "account not found")

// ErrTransactionNotFound indicates that a referenced transaction does not exist.
var ErrTransactionNotFound = wrap(ErrNotFound, "transaction not found")

// ErrInsufficientFunds indicates that the origin account balance cannot cover a transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount indicates a transfer whose origin and destination are the same account.
var ErrSameAccount = wrap(ErrValidation, "origin and destination accounts must differ")

type wrappedError struct {
	parent error
	msg    string
}

func wrap(parent error, msg string) error {
	return &wrappedError{parent: parent, msg: msg}
}

func (e *wrappedError) Error() string { return e.msg }

func (e *wrappedError) Unwrap() error { return e.parent }
