package ledger

import (
	"context"

	"github.com/chris/squad-arena/pkg/models"
)

// AuditReport compares a wallet's cached counters with its transaction log.
type AuditReport struct {
	UserID           string `json:"user_id"`
	Balance          int64  `json:"balance"`
	TotalDeposits    int64  `json:"total_deposits"`
	TotalWithdrawals int64  `json:"total_withdrawals"`
	Credits          int64  `json:"credits"`
	Debits           int64  `json:"debits"`
	Transactions     int    `json:"transactions"`
	Consistent       bool   `json:"consistent"`
}

// Audit replays the successful transactions of a wallet and checks that
// balance = credits - debits and that the cached totals match the log.
// The result is only meaningful while no write hits the wallet.
func (s *Service) Audit(ctx context.Context, userID string) (*AuditReport, error) {
	wallet, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		UserID:           userID,
		Balance:          wallet.Balance,
		TotalDeposits:    wallet.TotalDeposits,
		TotalWithdrawals: wallet.TotalWithdrawals,
	}

	cursor := ""
	for {
		page, err := s.store.ListTransactions(ctx, userID, MaxPageLimit, cursor)
		if err != nil {
			return nil, err
		}

		for _, tx := range page.Items {
			report.Transactions++
			if tx.Status != models.SUCCESS {
				continue
			}
			switch tx.Type {
			case models.CREDIT:
				report.Credits += tx.Amount
			case models.DEBIT:
				report.Debits += tx.Amount
			}
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	report.Consistent = report.Credits-report.Debits == report.Balance &&
		report.Credits == report.TotalDeposits &&
		report.Debits == report.TotalWithdrawals

	return report, nil
}
