package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/chris/squad-arena/pkg/storage/memory"
	"github.com/chris/squad-arena/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDepositFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Then Success", func(t *testing.T) {
		svc := NewService(memory.New(), nil)
		_, err := svc.CreateWallet(ctx, "user1", "", "", 0)
		require.NoError(t, err)

		tx, err := svc.RecordDeposit(ctx, "user1", 750, "card", "pay-1", map[string]string{"gateway_order": "o-1"})
		require.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)

		balance, err := svc.GetBalance(ctx, "user1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)

		settled, err := svc.CompleteDeposit(ctx, tx.ID, true)
		require.NoError(t, err)
		assert.Equal(t, models.SUCCESS, settled.Status)

		balance, err = svc.GetBalance(ctx, "user1")
		require.NoError(t, err)
		assert.Equal(t, int64(750), balance)

		_, err = svc.CompleteDeposit(ctx, tx.ID, true)
		assert.ErrorIs(t, err, storage.ErrDepositNotPending)

		report, err := svc.Audit(ctx, "user1")
		require.NoError(t, err)
		assert.True(t, report.Consistent)
	})

	t.Run("Pending Then Failed", func(t *testing.T) {
		svc := NewService(memory.New(), nil)
		_, err := svc.CreateWallet(ctx, "user1", "", "", 0)
		require.NoError(t, err)

		tx, err := svc.RecordDeposit(ctx, "user1", 750, "card", "pay-1", nil)
		require.NoError(t, err)

		failed, err := svc.CompleteDeposit(ctx, tx.ID, false)
		require.NoError(t, err)
		assert.Equal(t, models.FAILED, failed.Status)

		balance, err := svc.GetBalance(ctx, "user1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("Suspended Wallet", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserID: "user1", Status: models.WalletSuspended}, nil)

		svc := NewService(mockStore, nil)
		_, err := svc.RecordDeposit(ctx, "user1", 10, "card", "pay-1", nil)

		assert.ErrorIs(t, err, storage.ErrWalletNotActive)
		mockStore.AssertNotCalled(t, "CreatePendingTransaction", mock.Anything, mock.Anything)
	})
}

func TestFailStaleDeposits(t *testing.T) {
	t.Run("Skips Settled And Reports Errors", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetStalePendingTransactions", mock.Anything, 30*time.Minute).Return([]models.Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
		mockStore.On("SettleDeposit", mock.Anything, "a", false).Return(&models.Transaction{ID: "a", Status: models.FAILED}, nil)
		mockStore.On("SettleDeposit", mock.Anything, "b", false).Return(nil, storage.ErrDepositNotPending)
		mockStore.On("SettleDeposit", mock.Anything, "c", false).Return(nil, errors.New("throttled"))

		svc := NewService(mockStore, nil)
		n, err := svc.FailStaleDeposits(context.Background(), 30*time.Minute)

		assert.Equal(t, 1, n)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "transaction c")
		mockStore.AssertExpectations(t)
	})

	t.Run("Nothing Stale", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetStalePendingTransactions", mock.Anything, time.Minute).Return(nil, nil)

		svc := NewService(mockStore, nil)
		n, err := svc.FailStaleDeposits(context.Background(), time.Minute)

		assert.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestAuditDetectsDrift(t *testing.T) {
	mockStore := new(mocks.Storage)
	mockStore.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserID: "user1", Balance: 900, TotalDeposits: 1000}, nil)
	mockStore.On("ListTransactions", mock.Anything, "user1", int32(MaxPageLimit), "").Return(&models.TransactionPage{
		Items:      []models.Transaction{{Type: models.CREDIT, Amount: 1000, Status: models.SUCCESS}},
		NextCursor: "next",
	}, nil)
	mockStore.On("ListTransactions", mock.Anything, "user1", int32(MaxPageLimit), "next").Return(&models.TransactionPage{
		Items: []models.Transaction{{Type: models.DEBIT, Amount: 50, Status: models.SUCCESS}, {Type: models.CREDIT, Amount: 10, Status: models.PENDING}},
	}, nil)

	svc := NewService(mockStore, nil)
	report, err := svc.Audit(context.Background(), "user1")

	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, 3, report.Transactions)
	assert.Equal(t, int64(50), report.Debits)
	mockStore.AssertExpectations(t)
}
