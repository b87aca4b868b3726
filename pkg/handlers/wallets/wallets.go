package wallets

import (
	"context"
	"net/http"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	"github.com/chris/squad-arena/pkg/mapping"
	"github.com/chris/squad-arena/pkg/models"
)

// Service is the part of the wallet ledger these handlers use.
type Service interface {
	CreateWallet(ctx context.Context, userID, userName, userEmail string, openingBalance int64) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	SetStatus(ctx context.Context, userID string, status models.WalletStatus) (*models.Wallet, error)
}

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Service Service
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(service Service) *WalletsHandler {
	return &WalletsHandler{Service: service}
}

// CreateWallet handles the logic for creating a new wallet.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if !respond.Decode(w, r, &newWallet) {
		return
	}

	var opening int64
	if newWallet.OpeningBalance != nil {
		opening = *newWallet.OpeningBalance
	}

	created, err := h.Service.CreateWallet(r.Context(), newWallet.UserId, newWallet.UserName, newWallet.UserEmail, opening)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, mapping.ToApiWallet(created))
}

// GetWalletByUserId handles the logic for retrieving a user's wallet.
func (h *WalletsHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	wallet, err := h.Service.GetWallet(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}

// SetWalletStatus suspends, closes or reactivates a wallet.
func (h *WalletsHandler) SetWalletStatus(w http.ResponseWriter, r *http.Request, userId string) {
	var update api.WalletStatusUpdate
	if !respond.Decode(w, r, &update) {
		return
	}

	wallet, err := h.Service.SetStatus(r.Context(), userId, models.WalletStatus(update.Status))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}
