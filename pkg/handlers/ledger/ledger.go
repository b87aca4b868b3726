package ledger

import (
	"context"
	"net/http"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	domain "github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/mapping"
	"github.com/chris/squad-arena/pkg/models"
)

// Reader is the read side of the wallet ledger.
type Reader interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	ListTransactions(ctx context.Context, userID string, page domain.Page) (*models.TransactionPage, error)
	Audit(ctx context.Context, userID string) (*domain.AuditReport, error)
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Reader Reader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reader Reader) *LedgerHandler {
	return &LedgerHandler{Reader: reader}
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request, userId string) {
	balance, err := h.Reader.GetBalance(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Balance{UserId: userId, Balance: balance})
}

func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request, userId string, params api.ListTransactionsParams) {
	var page domain.Page
	if params.Limit != nil {
		page.Limit = int(*params.Limit)
	}
	if params.Cursor != nil {
		page.Cursor = *params.Cursor
	}

	result, err := h.Reader.ListTransactions(r.Context(), userId, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiTransactionPage(result))
}

// AuditWallet replays the wallet's ledger against its cached counters.
func (h *LedgerHandler) AuditWallet(w http.ResponseWriter, r *http.Request, userId string) {
	report, err := h.Reader.Audit(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAuditReport(report))
}
