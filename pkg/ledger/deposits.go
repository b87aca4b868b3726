package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// RecordDeposit records a deposit that is waiting for the payment gateway.
// The balance only changes once CompleteDeposit reports success.
func (s *Service) RecordDeposit(ctx context.Context, userID string, amount int64, paymentMethod, referenceID string, metadata map[string]string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if err := checkReference(referenceID); err != nil {
		return nil, err
	}

	wallet, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status != models.WalletActive {
		return nil, fmt.Errorf("%w: status is %s", storage.ErrWalletNotActive, wallet.Status)
	}

	description := "Deposit"
	if paymentMethod != "" {
		description = "Deposit via " + paymentMethod
	}

	tx := &models.Transaction{
		UserID:        userID,
		Type:          models.CREDIT,
		Amount:        amount,
		Description:   description,
		ReferenceID:   referenceID,
		PaymentMethod: paymentMethod,
		Metadata:      metadata,
	}

	return s.store.CreatePendingTransaction(ctx, tx)
}

// CompleteDeposit settles a pending deposit. A successful deposit credits the
// wallet in the same write that marks it successful.
func (s *Service) CompleteDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error) {
	tx, err := s.store.SettleDeposit(ctx, txID, succeeded)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deposit settled", "transaction_id", txID, "status", tx.Status)

	if succeeded {
		wallet, err := s.store.GetWallet(ctx, tx.UserID)
		if err != nil {
			slog.WarnContext(ctx, "failed to read wallet after deposit", "user_id", tx.UserID, "error", err)
			return tx, nil
		}
		s.publishWalletUpdate(ctx, tx.ID, tx.UserID, tx.Amount, wallet.Balance)
	}

	return tx, nil
}

// FailStaleDeposits marks deposits that have been pending for longer than
// maxAge as failed and returns how many it failed. Deposits settled in the
// meantime are skipped.
func (s *Service) FailStaleDeposits(ctx context.Context, maxAge time.Duration) (int, error) {
	stale, err := s.store.GetStalePendingTransactions(ctx, maxAge)
	if err != nil {
		return 0, fmt.Errorf("failed to get stale deposits: %w", err)
	}

	var failed int
	var errs []error
	for _, tx := range stale {
		if _, err := s.store.SettleDeposit(ctx, tx.ID, false); err != nil {
			if errors.Is(err, storage.ErrDepositNotPending) {
				continue
			}
			slog.ErrorContext(ctx, "failed to expire deposit", "transaction_id", tx.ID, "error", err)
			errs = append(errs, fmt.Errorf("transaction %s: %w", tx.ID, err))
			continue
		}
		failed++
	}

	return failed, errors.Join(errs...)
}
