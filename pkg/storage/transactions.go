package storage

import (
	"context"
	"time"

	"github.com/chris/squad-arena/pkg/models"
)

// TransactionReader defines the interface for reading ledger entries.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactions retrieves one page of a user's transactions, newest first.
	// An empty cursor starts from the most recent entry.
	ListTransactions(ctx context.Context, userID string, limit int32, cursor string) (*models.TransactionPage, error)

	// GetStalePendingTransactions retrieves transactions that have been pending for longer than maxAge.
	GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// DepositStore handles the two-phase flow for externally funded credits.
type DepositStore interface {
	// CreatePendingTransaction records a pending credit without touching the balance.
	CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// SettleDeposit moves a pending credit to success (crediting the wallet) or failed.
	SettleDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error)
}

// TransactionStore combines the reader and deposit interfaces.
type TransactionStore interface {
	TransactionReader
	DepositStore
}
