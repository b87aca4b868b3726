package transactions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/chris/squad-arena/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreditDebitWallet(t *testing.T) {
	t.Run("Credit", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApplyTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.CREDIT && tx.Amount == 500 && tx.ReferenceID == "promo-1"
		})).Return(&models.Wallet{UserID: "user1", Balance: 1500}, nil)

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		body, _ := json.Marshal(api.AmountRequest{Amount: 500, Description: "promo", ReferenceId: "promo-1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets/user1/credit", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreditWallet(rr, req, "user1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned api.Wallet
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, int64(1500), returned.Balance)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApplyTransaction", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientBalance)

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		body, _ := json.Marshal(api.AmountRequest{Amount: 2000})
		req := httptest.NewRequest(http.MethodPost, "/wallets/user1/debit", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.DebitWallet(rr, req, "user1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), api.CodeInsufficientBalance)
	})

	t.Run("Duplicate Reference", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApplyTransaction", mock.Anything, mock.Anything).Return(nil, storage.ErrDuplicateReference)

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		body, _ := json.Marshal(api.AmountRequest{Amount: 10, ReferenceId: "r1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets/user1/debit", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.DebitWallet(rr, req, "user1")

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), api.CodeDuplicateReference)
	})

	t.Run("Zero Amount", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		body, _ := json.Marshal(api.AmountRequest{Amount: 0})
		req := httptest.NewRequest(http.MethodPost, "/wallets/user1/credit", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreditWallet(rr, req, "user1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ApplyTransaction", mock.Anything, mock.Anything)
	})
}

func TestDeposits(t *testing.T) {
	t.Run("Record", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserID: "user1", Status: models.WalletActive}, nil)
		mockStorage.On("CreatePendingTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Amount == 250 && tx.PaymentMethod == "upi" && tx.ReferenceID == "pg-77"
		})).Return(&models.Transaction{ID: "tx1", UserID: "user1", Amount: 250, Status: models.PENDING}, nil)

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		body, _ := json.Marshal(api.NewDeposit{Amount: 250, PaymentMethod: "upi", ReferenceId: "pg-77"})
		req := httptest.NewRequest(http.MethodPost, "/wallets/user1/deposits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.RecordDeposit(rr, req, "user1")

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var returned api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, api.TransactionStatus("pending"), returned.Status)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Complete", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("SettleDeposit", mock.Anything, "tx1", true).
			Return(&models.Transaction{ID: "tx1", UserID: "user1", Type: models.CREDIT, Amount: 250, Status: models.SUCCESS}, nil)
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserID: "user1", Balance: 250}, nil).Maybe()

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodPost, "/deposits/tx1/complete", bytes.NewReader([]byte(`{"succeeded":true}`)))
		rr := httptest.NewRecorder()

		handler.CompleteDeposit(rr, req, "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Complete Twice", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("SettleDeposit", mock.Anything, "tx1", false).Return(nil, storage.ErrDepositNotPending)

		handler := NewTransactionsHandler(ledger.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodPost, "/deposits/tx1/complete", bytes.NewReader([]byte(`{"succeeded":false}`)))
		rr := httptest.NewRecorder()

		handler.CompleteDeposit(rr, req, "tx1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
