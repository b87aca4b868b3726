package ledger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/ledger"
	domain "github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/chris/squad-arena/pkg/storage/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListTransactions(t *testing.T) {
	wallet := &models.Wallet{UserID: "user1", Balance: 100, Status: models.WalletActive}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		page := &models.TransactionPage{
			Items: []models.Transaction{
				{ID: uuid.New().String(), UserID: "user1", Type: models.CREDIT, Amount: 50, CreatedAt: time.Now()},
				{ID: uuid.New().String(), UserID: "user1", Type: models.DEBIT, Amount: 20, CreatedAt: time.Now().Add(-1 * time.Minute)},
			},
			NextCursor: "next",
		}
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(wallet, nil)
		mockStorage.On("ListTransactions", mock.Anything, "user1", int32(domain.DefaultPageLimit), "").Return(page, nil)

		h := ledger.NewLedgerHandler(domain.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodGet, "/wallets/user1/transactions", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListTransactions(rr, req, "user1", api.ListTransactionsParams{})

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.TransactionPage
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned.Items, 2)
		assert.Equal(t, page.Items[0].ID, returned.Items[0].Id)
		if assert.NotNil(t, returned.NextCursor) {
			assert.Equal(t, "next", *returned.NextCursor)
		}

		mockStorage.AssertExpectations(t)
	})

	t.Run("With Limit And Cursor", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		limit := int32(10)
		cursor := "abc"
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(wallet, nil)
		mockStorage.On("ListTransactions", mock.Anything, "user1", limit, cursor).Return(&models.TransactionPage{}, nil)

		h := ledger.NewLedgerHandler(domain.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodGet, "/wallets/user1/transactions?limit=10&cursor=abc", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListTransactions(rr, req, "user1", api.ListTransactionsParams{Limit: &limit, Cursor: &cursor})

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "nextCursor")
		mockStorage.AssertExpectations(t)
	})

	t.Run("Bad Cursor", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		cursor := "%%%"
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(wallet, nil)
		mockStorage.On("ListTransactions", mock.Anything, "user1", mock.Anything, cursor).Return(nil, storage.ErrInvalidCursor)

		h := ledger.NewLedgerHandler(domain.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodGet, "/wallets/user1/transactions", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListTransactions(rr, req, "user1", api.ListTransactionsParams{Cursor: &cursor})

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(wallet, nil)
		mockStorage.On("ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

		h := ledger.NewLedgerHandler(domain.NewService(mockStorage, nil))

		req := httptest.NewRequest(http.MethodGet, "/wallets/user1/transactions", nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListTransactions(rr, req, "user1", api.ListTransactionsParams{})

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestGetBalance(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserID: "user1", Balance: 1300}, nil)

	h := ledger.NewLedgerHandler(domain.NewService(mockStorage, nil))

	req := httptest.NewRequest(http.MethodGet, "/wallets/user1/balance", nil)
	rr := httptest.NewRecorder()

	h.GetBalance(rr, req, "user1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var returned api.Balance
	json.Unmarshal(rr.Body.Bytes(), &returned)
	assert.Equal(t, int64(1300), returned.Balance)
}
