// Package ledger owns every change to a wallet balance. Each change is one
// atomic storage write that updates the wallet counters and appends the
// transaction record together.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/storage"
)

var (
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidUserID is returned when no user ID is given.
	ErrInvalidUserID = errors.New("user ID is required")

	// ErrInvalidStatus is returned for an unknown wallet status.
	ErrInvalidStatus = errors.New("invalid wallet status")

	// ErrReservedReference is returned when a caller reference uses a prefix
	// the system keeps for its own transactions.
	ErrReservedReference = errors.New("reference uses a reserved prefix")
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	openingReference = "wallet:opening-balance"
)

// Prefixes of references written by the system itself. Opening balances,
// match entries and refunds all derive their transaction IDs from them.
var reservedPrefixes = []string{"wallet:", "match:", "refund:"}

func checkReference(referenceID string) error {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(referenceID, prefix) {
			return fmt.Errorf("%w: %q", ErrReservedReference, referenceID)
		}
	}
	return nil
}

// Store is the storage the ledger needs.
type Store interface {
	storage.WalletStore
	storage.LedgerWriter
	storage.TransactionStore
}

// Service implements the wallet ledger.
type Service struct {
	store     Store
	publisher notify.Publisher
}

// NewService creates a new ledger Service. A nil publisher disables notifications.
func NewService(store Store, publisher notify.Publisher) *Service {
	if publisher == nil {
		publisher = &notify.NoOpPublisher{}
	}
	return &Service{store: store, publisher: publisher}
}

// CreateWallet opens a wallet for userID. A positive opening balance is
// recorded as the wallet's first successful credit.
func (s *Service) CreateWallet(ctx context.Context, userID, userName, userEmail string, openingBalance int64) (*models.Wallet, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if openingBalance < 0 {
		return nil, fmt.Errorf("%w: opening balance %d", ErrInvalidAmount, openingBalance)
	}

	now := time.Now().UTC()
	wallet := &models.Wallet{
		ID:            models.WalletIDFor(userID),
		UserID:        userID,
		UserName:      userName,
		UserEmail:     userEmail,
		Balance:       openingBalance,
		TotalDeposits: openingBalance,
		Status:        models.WalletActive,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var opening *models.Transaction
	if openingBalance > 0 {
		wallet.LastTransactionAt = &now
		opening = &models.Transaction{
			ID:          models.TransactionIDFor(userID, openingReference),
			WalletID:    wallet.ID,
			UserID:      userID,
			Type:        models.CREDIT,
			Amount:      openingBalance,
			Description: "Opening balance",
			ReferenceID: openingReference,
			Status:      models.SUCCESS,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	created, err := s.store.CreateWallet(ctx, wallet, opening)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "wallet created", "user_id", userID, "opening_balance", openingBalance)
	return created, nil
}

// Credit adds amount to the wallet of userID.
func (s *Service) Credit(ctx context.Context, userID string, amount int64, description, referenceID string) (*models.Wallet, error) {
	return s.apply(ctx, models.CREDIT, userID, amount, description, referenceID)
}

// Debit removes amount from the wallet of userID. It fails with
// storage.ErrInsufficientBalance, leaving the wallet untouched, when the
// balance does not cover the amount.
func (s *Service) Debit(ctx context.Context, userID string, amount int64, description, referenceID string) (*models.Wallet, error) {
	return s.apply(ctx, models.DEBIT, userID, amount, description, referenceID)
}

func (s *Service) apply(ctx context.Context, txType models.TransactionType, userID string, amount int64, description, referenceID string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if err := checkReference(referenceID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
	}

	wallet, err := s.store.ApplyTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	change := amount
	if txType == models.DEBIT {
		change = -amount
	}
	s.publishWalletUpdate(ctx, tx.ID, userID, change, wallet.Balance)

	return wallet, nil
}

// CanAfford reports whether the wallet is active and holds at least amount.
// It is a hint only; the debit itself re-checks the balance atomically.
func (s *Service) CanAfford(ctx context.Context, userID string, amount int64) (bool, error) {
	wallet, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return false, err
	}
	return wallet.Status == models.WalletActive && wallet.Balance >= amount, nil
}

// GetBalance returns the current balance of userID's wallet.
func (s *Service) GetBalance(ctx context.Context, userID string) (int64, error) {
	wallet, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// GetWallet returns the wallet of userID.
func (s *Service) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.store.GetWallet(ctx, userID)
}

// Page selects one page of transaction history.
type Page struct {
	Limit  int
	Cursor string
}

// ListTransactions returns the wallet's transactions, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string, page Page) (*models.TransactionPage, error) {
	if _, err := s.store.GetWallet(ctx, userID); err != nil {
		return nil, err
	}

	limit := page.Limit
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}

	return s.store.ListTransactions(ctx, userID, int32(limit), page.Cursor)
}

// SetStatus suspends, closes or reactivates a wallet. Closing is final.
func (s *Service) SetStatus(ctx context.Context, userID string, status models.WalletStatus) (*models.Wallet, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	wallet, err := s.store.SetWalletStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "wallet status changed", "user_id", userID, "status", status)
	return wallet, nil
}

func (s *Service) publishWalletUpdate(ctx context.Context, txID, userID string, change, balance int64) {
	event := notify.Event{
		Type:    notify.EventWalletUpdated,
		UserIDs: []string{userID},
		Payload: notify.WalletUpdatePayload{
			UserID:        userID,
			TransactionID: txID,
			Change:        change,
			NewBalance:    balance,
		},
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish wallet update", "user_id", userID, "error", err)
	}
}
