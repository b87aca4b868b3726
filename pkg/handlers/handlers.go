package handlers

import (
	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/handlers/ledger"
	"github.com/chris/squad-arena/pkg/handlers/matches"
	"github.com/chris/squad-arena/pkg/handlers/transactions"
	"github.com/chris/squad-arena/pkg/handlers/wallets"
	domain "github.com/chris/squad-arena/pkg/ledger"
	engine "github.com/chris/squad-arena/pkg/matches"
)

// ApiHandler implements the server interface by composing the
// wallet, ledger, transaction and match handlers.
type ApiHandler struct {
	*wallets.WalletsHandler
	*ledger.LedgerHandler
	*transactions.TransactionsHandler
	*matches.MatchesHandler
}

// NewApiHandler wires the handlers to the wallet ledger and the match engine.
func NewApiHandler(ledgerService *domain.Service, matchEngine *engine.Engine) *ApiHandler {
	return &ApiHandler{
		WalletsHandler:      wallets.NewWalletsHandler(ledgerService),
		LedgerHandler:       ledger.NewLedgerHandler(ledgerService),
		TransactionsHandler: transactions.NewTransactionsHandler(ledgerService),
		MatchesHandler:      matches.NewMatchesHandler(matchEngine),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
