package storage

import (
	"context"

	"github.com/chris/squad-arena/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// GetWallet retrieves a user's wallet by their user ID.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet for a user. When opening is non-nil it is
	// recorded in the same write as the credit that seeded the balance.
	CreateWallet(ctx context.Context, wallet *models.Wallet, opening *models.Transaction) (*models.Wallet, error)

	// ListWallets retrieves all wallets from the storage.
	ListWallets(ctx context.Context) ([]models.Wallet, error)

	// SetWalletStatus changes the moderation status of a wallet.
	SetWalletStatus(ctx context.Context, userID string, status models.WalletStatus) (*models.Wallet, error)
}

// LedgerWriter applies balance changes. Every call is a single atomic write
// covering the wallet counters and the new transaction record.
type LedgerWriter interface {
	// ApplyTransaction records a successful credit or debit and returns the updated wallet.
	ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Wallet, error)
}
