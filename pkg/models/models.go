package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletStatus defines the possible states of a wallet.
type WalletStatus string

const (
	WalletActive    WalletStatus = "active"
	WalletSuspended WalletStatus = "suspended"
	WalletClosed    WalletStatus = "closed"
)

// Valid reports whether s is a known wallet status.
func (s WalletStatus) Valid() bool {
	switch s {
	case WalletActive, WalletSuspended, WalletClosed:
		return true
	}
	return false
}

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	CREDIT TransactionType = "credit"
	DEBIT  TransactionType = "debit"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	PENDING TransactionStatus = "pending"
	SUCCESS TransactionStatus = "success"
	FAILED  TransactionStatus = "failed"
)

// Wallet is the authoritative balance of a single user.
// TotalDeposits and TotalWithdrawals are cached aggregates of the
// successful transactions in the ledger and must always match them.
type Wallet struct {
	ID                string       `json:"id" dynamodbav:"id"`
	UserID            string       `json:"user_id" dynamodbav:"user_id"`
	UserName          string       `json:"user_name" dynamodbav:"user_name"`
	UserEmail         string       `json:"user_email" dynamodbav:"user_email"`
	Balance           int64        `json:"balance" dynamodbav:"balance"`
	TotalDeposits     int64        `json:"total_deposits" dynamodbav:"total_deposits"`
	TotalWithdrawals  int64        `json:"total_withdrawals" dynamodbav:"total_withdrawals"`
	Status            WalletStatus `json:"status" dynamodbav:"status"`
	Version           int64        `json:"version" dynamodbav:"version"`
	LastTransactionAt *time.Time   `json:"last_transaction_at,omitempty" dynamodbav:"last_transaction_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}

// Transaction is one entry of a wallet's append-only ledger.
// Only Status (and UpdatedAt) may change after creation.
type Transaction struct {
	ID            string            `json:"id" dynamodbav:"id"`
	WalletID      string            `json:"wallet_id" dynamodbav:"wallet_id"`
	UserID        string            `json:"user_id" dynamodbav:"user_id"`
	Type          TransactionType   `json:"type" dynamodbav:"type"`
	Amount        int64             `json:"amount" dynamodbav:"amount"`
	Description   string            `json:"description" dynamodbav:"description"`
	ReferenceID   string            `json:"reference_id,omitempty" dynamodbav:"reference_id,omitempty"`
	Status        TransactionStatus `json:"status" dynamodbav:"status"`
	PaymentMethod string            `json:"payment_method,omitempty" dynamodbav:"payment_method,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" dynamodbav:"updated_at"`
}

// TransactionPage is one page of a wallet's history, newest first.
type TransactionPage struct {
	Items      []Transaction
	NextCursor string
}

var (
	walletNamespace      = uuid.MustParse("6f1c5a2e-7d3b-4c8e-9a41-2b7e0d5f9c13")
	transactionNamespace = uuid.MustParse("b2d94e70-1a6f-4f3c-8e25-5c0a7b9d3e84")
)

// WalletIDFor returns the stable wallet ID of a user's single wallet.
func WalletIDFor(userID string) string {
	return uuid.NewSHA1(walletNamespace, []byte(userID)).String()
}

// TransactionIDFor derives a transaction ID from the caller's reference so a
// repeated reference maps to the same record. An empty reference gets a random ID.
func TransactionIDFor(userID, referenceID string) string {
	if referenceID == "" {
		return uuid.New().String()
	}
	return uuid.NewSHA1(transactionNamespace, []byte(userID+"\x00"+referenceID)).String()
}
