// Package domain holds the error taxonomy shared by services, repositories
// and the HTTP layer. Validation failures are returned as values, never
// panics; handlers map them onto status codes.
package domain

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit exceeds the user's balance,
	// both at request time and again at approval time.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrBelowMinimum is returned when a withdrawal is under the platform minimum.
	ErrBelowMinimum = errors.New("minimum withdrawal is $5")

	// ErrNotFound is returned when a user, withdrawal, conversation or stake
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned on cross-user conversation access.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned when transitioning a withdrawal that is
	// no longer pending.
	ErrInvalidTransition = errors.New("withdrawal already processed")

	// ErrDuplicateInvoice is returned when a generated invoice number
	// collides with an existing one; callers regenerate and retry.
	ErrDuplicateInvoice = errors.New("duplicate invoice number")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrStakingDisabled is returned when a user without staking access
	// tries to open a stake.
	ErrStakingDisabled = errors.New("staking not enabled for your account")
)
