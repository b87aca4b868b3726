// Package api defines the HTTP surface: request and response types, the
// ServerInterface implemented by pkg/handlers and the chi wiring that binds
// path and query parameters.
package api

import (
	"time"

	"github.com/chris/squad-arena/pkg/models"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error kinds.
const (
	CodeValidation          = "validation_error"
	CodePrizeDistribution   = "prize_distribution_invalid"
	CodeResultsPayload      = "results_payload_invalid"
	CodeInsufficientBalance = "insufficient_balance"
	CodeMatchFull           = "match_full"
	CodeAlreadyRegistered   = "already_registered"
	CodeNotRegistered       = "not_registered"
	CodeInvalidMatchState   = "invalid_match_state"
	CodeDuplicateReference  = "duplicate_reference"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeRateLimited         = "rate_limited"
	CodeInternal            = "internal_error"
)

// WalletStatus is active, suspended or closed.
type WalletStatus string

// TransactionType is CREDIT or DEBIT.
type TransactionType string

// TransactionStatus is PENDING, SUCCESS or FAILED.
type TransactionStatus string

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

// NewWallet is the body of wallet creation.
type NewWallet struct {
	UserId         string `json:"userId"`
	UserName       string `json:"userName"`
	UserEmail      string `json:"userEmail"`
	OpeningBalance *int64 `json:"openingBalance,omitempty"`
}

// Wallet is a user's balance and its running totals.
type Wallet struct {
	Id                string       `json:"id"`
	UserId            string       `json:"userId"`
	UserName          string       `json:"userName"`
	UserEmail         string       `json:"userEmail"`
	Balance           int64        `json:"balance"`
	TotalDeposits     int64        `json:"totalDeposits"`
	TotalWithdrawals  int64        `json:"totalWithdrawals"`
	Status            WalletStatus `json:"status"`
	Version           int64        `json:"version"`
	LastTransactionAt *time.Time   `json:"lastTransactionAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type Balance struct {
	UserId  string `json:"userId"`
	Balance int64  `json:"balance"`
}

type WalletStatusUpdate struct {
	Status WalletStatus `json:"status"`
}

// AmountRequest is the body of a credit or debit.
type AmountRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReferenceId string `json:"referenceId,omitempty"`
}

// Transaction is one ledger entry.
type Transaction struct {
	Id            string            `json:"id"`
	WalletId      string            `json:"walletId"`
	UserId        string            `json:"userId"`
	Type          TransactionType   `json:"type"`
	Amount        int64             `json:"amount"`
	Description   string            `json:"description"`
	ReferenceId   string            `json:"referenceId,omitempty"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// TransactionPage holds newest-first transactions and the cursor of the next page.
type TransactionPage struct {
	Items      []Transaction `json:"items"`
	NextCursor *string       `json:"nextCursor,omitempty"`
}

// NewDeposit is the body of a deposit awaiting the payment gateway.
type NewDeposit struct {
	Amount        int64             `json:"amount"`
	PaymentMethod string            `json:"paymentMethod"`
	ReferenceId   string            `json:"referenceId"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// DepositCompletion is the payment gateway's verdict on a pending deposit.
type DepositCompletion struct {
	Succeeded bool `json:"succeeded"`
}

// AuditReport compares a wallet's counters with its transaction history.
type AuditReport struct {
	UserId           string `json:"userId"`
	Balance          int64  `json:"balance"`
	TotalDeposits    int64  `json:"totalDeposits"`
	TotalWithdrawals int64  `json:"totalWithdrawals"`
	Credits          int64  `json:"credits"`
	Debits           int64  `json:"debits"`
	Transactions     int    `json:"transactions"`
	Consistent       bool   `json:"consistent"`
}

// MatchSpec is the body of match creation and update.
type MatchSpec struct {
	Name              string                   `json:"name"`
	EntryFee          int64                    `json:"entryFee"`
	PrizePool         int64                    `json:"prizePool"`
	MaxPlayers        int                      `json:"maxPlayers"`
	Map               string                   `json:"map"`
	StartTime         time.Time                `json:"startTime"`
	PrizeDistribution models.PrizeDistribution `json:"prizeDistribution"`
}

type Registration struct {
	UserId           string    `json:"userId"`
	SquadId          string    `json:"squadId,omitempty"`
	EntryFeePaid     int64     `json:"entryFeePaid"`
	PaymentReference string    `json:"paymentReference,omitempty"`
	Status           string    `json:"status"`
	RegisteredAt     time.Time `json:"registeredAt"`
}

// Match is a match with its roster and, once completed, its results.
type Match struct {
	Id                string                   `json:"id"`
	Name              string                   `json:"name"`
	EntryFee          int64                    `json:"entryFee"`
	PrizePool         int64                    `json:"prizePool"`
	MaxPlayers        int                      `json:"maxPlayers"`
	Map               string                   `json:"map"`
	StartTime         time.Time                `json:"startTime"`
	Status            MatchStatus              `json:"status"`
	PrizeDistribution models.PrizeDistribution `json:"prizeDistribution"`
	RegisteredPlayers []Registration           `json:"registeredPlayers"`
	CurrentPlayers    int                      `json:"currentPlayers"`
	Results           *models.Results          `json:"results,omitempty"`
	Version           int64                    `json:"version"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

type MatchStatusUpdate struct {
	Status MatchStatus `json:"status"`
}

type JoinRequest struct {
	SquadId string `json:"squadId,omitempty"`
}

// ResultsUpload is the final standings of a completed match.
type ResultsUpload struct {
	SquadRankings []models.SquadRanking `json:"squadRankings"`
	MatchDuration int64                 `json:"matchDuration"`
	Awards        map[string]string     `json:"awards,omitempty"`
}

// AutoUpdateResult counts the matches a status sweep moved.
type AutoUpdateResult struct {
	Updated int `json:"updated"`
}

// ListTransactionsParams are the query parameters of ListTransactions.
type ListTransactionsParams struct {
	Limit  *int32  `form:"limit,omitempty" json:"limit,omitempty"`
	Cursor *string `form:"cursor,omitempty" json:"cursor,omitempty"`
}

// ListMatchesParams filters ListMatches by status.
type ListMatchesParams struct {
	Status *MatchStatus `form:"status,omitempty" json:"status,omitempty"`
}
