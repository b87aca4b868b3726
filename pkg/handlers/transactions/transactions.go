package transactions

import (
	"context"
	"net/http"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	"github.com/chris/squad-arena/pkg/mapping"
	"github.com/chris/squad-arena/pkg/models"
)

// Writer is the balance-changing side of the wallet ledger.
type Writer interface {
	Credit(ctx context.Context, userID string, amount int64, description, referenceID string) (*models.Wallet, error)
	Debit(ctx context.Context, userID string, amount int64, description, referenceID string) (*models.Wallet, error)
	RecordDeposit(ctx context.Context, userID string, amount int64, paymentMethod, referenceID string, metadata map[string]string) (*models.Transaction, error)
	CompleteDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error)
}

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Writer Writer
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(writer Writer) *TransactionsHandler {
	return &TransactionsHandler{Writer: writer}
}

// CreditWallet adds funds to a wallet and returns the updated wallet.
func (h *TransactionsHandler) CreditWallet(w http.ResponseWriter, r *http.Request, userId string) {
	h.apply(w, r, userId, h.Writer.Credit)
}

// DebitWallet removes funds from a wallet and returns the updated wallet.
func (h *TransactionsHandler) DebitWallet(w http.ResponseWriter, r *http.Request, userId string) {
	h.apply(w, r, userId, h.Writer.Debit)
}

type applyFunc func(ctx context.Context, userID string, amount int64, description, referenceID string) (*models.Wallet, error)

func (h *TransactionsHandler) apply(w http.ResponseWriter, r *http.Request, userId string, fn applyFunc) {
	var req api.AmountRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	wallet, err := fn(r.Context(), userId, req.Amount, req.Description, req.ReferenceId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}

// RecordDeposit records a pending deposit awaiting the payment gateway.
func (h *TransactionsHandler) RecordDeposit(w http.ResponseWriter, r *http.Request, userId string) {
	var deposit api.NewDeposit
	if !respond.Decode(w, r, &deposit) {
		return
	}

	tx, err := h.Writer.RecordDeposit(r.Context(), userId, deposit.Amount, deposit.PaymentMethod, deposit.ReferenceId, deposit.Metadata)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusAccepted, mapping.ToApiTransaction(tx))
}

// CompleteDeposit handles the payment gateway's callback for a pending deposit.
func (h *TransactionsHandler) CompleteDeposit(w http.ResponseWriter, r *http.Request, transactionId string) {
	var completion api.DepositCompletion
	if !respond.Decode(w, r, &completion) {
		return
	}

	tx, err := h.Writer.CompleteDeposit(r.Context(), transactionId, completion.Succeeded)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}
