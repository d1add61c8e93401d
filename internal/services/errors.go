package services

import "errors"

// Sentinel errors returned by services. Handlers map these to HTTP codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrShopNotFound     = errors.New("shop not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrLoanClosed         = errors.New("loan is closed")
	ErrOutstandingBalance = errors.New("loan has an outstanding balance")
	ErrCustomerHasLoans   = errors.New("customer has loans and cannot be deleted")
	ErrCustomerInactive   = errors.New("customer is inactive")

	// ErrConcurrentUpdate signals that the loan balances changed between
	// read and write inside a payment transaction. The client should retry.
	ErrConcurrentUpdate = errors.New("loan was modified concurrently, retry the payment")

	// ErrNumberExhausted means a unique loan or payment number could not be
	// generated within the retry limit.
	ErrNumberExhausted = errors.New("could not generate a unique document number")

	ErrNoFields = errors.New("no fields to update")
)
