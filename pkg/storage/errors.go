package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "record does not exist" error.
var ErrNotFound = errors.New("not found")

var (
	// ErrWalletNotFound is returned when no wallet exists for a user.
	ErrWalletNotFound = fmt.Errorf("wallet %w", ErrNotFound)

	// ErrMatchNotFound is returned when no match exists with the given ID.
	ErrMatchNotFound = fmt.Errorf("match %w", ErrNotFound)

	// ErrTransactionNotFound is returned when no ledger entry exists with the given ID.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
)

// ErrWalletExists is returned when a user already owns a wallet.
var ErrWalletExists = errors.New("wallet already exists")

// ErrWalletNotActive is returned when a balance change targets a suspended or closed wallet.
var ErrWalletNotActive = errors.New("wallet is not active")

// ErrInsufficientBalance is returned when a wallet has an insufficient balance for a debit.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrDuplicateReference is returned when a reference ID has already been recorded for the wallet.
var ErrDuplicateReference = errors.New("reference already recorded")

// ErrDepositNotPending is returned when a deposit callback targets a transaction that is no longer pending.
var ErrDepositNotPending = errors.New("deposit is not pending")

// ErrMatchExists is returned when a match ID collides with an existing match.
var ErrMatchExists = errors.New("match already exists")

// ErrMatchFull is returned when every slot of a match is taken.
var ErrMatchFull = errors.New("match is full")

// ErrAlreadyRegistered is returned when a user already holds an active entry in a match.
var ErrAlreadyRegistered = errors.New("already registered for match")

// ErrNotRegistered is returned when a user holds no active entry in a match.
var ErrNotRegistered = errors.New("not registered for match")

// ErrInvalidMatchState is returned when an operation is not allowed in the match's current status.
var ErrInvalidMatchState = errors.New("operation not allowed in current match state")

// ErrResultsAlreadyRecorded is returned when final results were already written.
var ErrResultsAlreadyRecorded = errors.New("match results already recorded")

// ErrCapacityBelowRegistrations is returned when an update would shrink a match below its active registrations.
var ErrCapacityBelowRegistrations = errors.New("max players below active registrations")

// ErrConcurrentUpdate is returned when a conditional write lost a race that
// cannot be attributed to a business rule. Callers may retry.
var ErrConcurrentUpdate = errors.New("record changed concurrently")

// ErrInvalidCursor is returned when a page cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid page cursor")
