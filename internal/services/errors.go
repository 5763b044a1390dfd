package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by the auth service on a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports bad input to a create or update operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown month or record id.
type NotFoundError struct {
	What  string // "month", "member", "winner"
	Month string
	ID    string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found in month %s", e.What, e.ID, e.Month)
	}
	return fmt.Sprintf("%s not found for month %s", e.What, e.Month)
}

// InvariantViolationError reports an attempted mutation of a protected record.
type InvariantViolationError struct {
	Month string
	ID    string
	Field string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("member %s in month %s has won or is payment-exempt; %s cannot be modified", e.ID, e.Month, e.Field)
}

// DuplicateWinnerError reports that a winner has already been declared for
// the month.
type DuplicateWinnerError struct {
	Month string
}

func (e *DuplicateWinnerError) Error() string {
	return fmt.Sprintf("a winner has already been declared for %s", e.Month)
}

// EmptyRosterError reports an operation that needs members but found none.
type EmptyRosterError struct {
	Month string
}

func (e *EmptyRosterError) Error() string {
	return fmt.Sprintf("no members found for %s", e.Month)
}

// AlreadySeededError reports that the next month is already populated; the
// advance operation is not idempotent and must not silently overwrite.
type AlreadySeededError struct {
	Month string
}

func (e *AlreadySeededError) Error() string {
	return fmt.Sprintf("month %s is already populated", e.Month)
}

// EndOfSequenceError reports that no month follows the given one.
type EndOfSequenceError struct {
	Month string
}

func (e *EndOfSequenceError) Error() string {
	return fmt.Sprintf("%s is the last month of the scheme; there is no next month", e.Month)
}

// StoreError wraps an underlying store failure with the operation and month
// being attempted.
type StoreError struct {
	Op    string
	Month string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Month == "" {
		return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store failure during %s for month %s: %v", e.Op, e.Month, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
