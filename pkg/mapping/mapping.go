package mapping

import (
	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:            tx.ID,
		WalletId:      tx.WalletID,
		UserId:        tx.UserID,
		Type:          api.TransactionType(tx.Type),
		Amount:        tx.Amount,
		Description:   tx.Description,
		ReferenceId:   tx.ReferenceID,
		Status:        api.TransactionStatus(tx.Status),
		PaymentMethod: tx.PaymentMethod,
		Metadata:      tx.Metadata,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

// ToApiTransactionPage converts one page of a wallet's history.
func ToApiTransactionPage(page *models.TransactionPage) *api.TransactionPage {
	out := &api.TransactionPage{Items: make([]api.Transaction, len(page.Items))}
	for i := range page.Items {
		out.Items[i] = *ToApiTransaction(&page.Items[i])
	}
	if page.NextCursor != "" {
		cursor := page.NextCursor
		out.NextCursor = &cursor
	}
	return out
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		Id:                wallet.ID,
		UserId:            wallet.UserID,
		UserName:          wallet.UserName,
		UserEmail:         wallet.UserEmail,
		Balance:           wallet.Balance,
		TotalDeposits:     wallet.TotalDeposits,
		TotalWithdrawals:  wallet.TotalWithdrawals,
		Status:            api.WalletStatus(wallet.Status),
		Version:           wallet.Version,
		LastTransactionAt: wallet.LastTransactionAt,
		CreatedAt:         wallet.CreatedAt,
		UpdatedAt:         wallet.UpdatedAt,
	}
}

// ToApiAuditReport converts a ledger audit.
func ToApiAuditReport(report *ledger.AuditReport) *api.AuditReport {
	return &api.AuditReport{
		UserId:           report.UserID,
		Balance:          report.Balance,
		TotalDeposits:    report.TotalDeposits,
		TotalWithdrawals: report.TotalWithdrawals,
		Credits:          report.Credits,
		Debits:           report.Debits,
		Transactions:     report.Transactions,
		Consistent:       report.Consistent,
	}
}

// ToDomainMatchSpec converts an API match body to the engine's input.
func ToDomainMatchSpec(spec *api.MatchSpec) matches.MatchSpec {
	return matches.MatchSpec{
		Name:              spec.Name,
		EntryFee:          spec.EntryFee,
		PrizePool:         spec.PrizePool,
		MaxPlayers:        spec.MaxPlayers,
		Map:               models.MatchMap(spec.Map),
		StartTime:         spec.StartTime,
		PrizeDistribution: spec.PrizeDistribution,
	}
}

// ToApiRegistration converts a single match entry.
func ToApiRegistration(reg *models.Registration) *api.Registration {
	return &api.Registration{
		UserId:           reg.UserID,
		SquadId:          reg.SquadID,
		EntryFeePaid:     reg.EntryFeePaid,
		PaymentReference: reg.PaymentReference,
		Status:           string(reg.Status),
		RegisteredAt:     reg.RegisteredAt,
	}
}

// ToApiMatch converts a domain Match model to an API Match model.
func ToApiMatch(match *models.Match) *api.Match {
	players := make([]api.Registration, len(match.RegisteredPlayers))
	for i := range match.RegisteredPlayers {
		players[i] = *ToApiRegistration(&match.RegisteredPlayers[i])
	}

	return &api.Match{
		Id:                match.ID,
		Name:              match.Name,
		EntryFee:          match.EntryFee,
		PrizePool:         match.PrizePool,
		MaxPlayers:        match.MaxPlayers,
		Map:               string(match.Map),
		StartTime:         match.StartTime,
		Status:            api.MatchStatus(match.Status),
		PrizeDistribution: match.PrizeDistribution,
		RegisteredPlayers: players,
		CurrentPlayers:    match.ActiveCount,
		Results:           match.Results,
		Version:           match.Version,
		CreatedAt:         match.CreatedAt,
		UpdatedAt:         match.UpdatedAt,
	}
}

// ToDomainResults converts an uploaded results body.
func ToDomainResults(upload *api.ResultsUpload) matches.ResultsPayload {
	return matches.ResultsPayload{
		SquadRankings: upload.SquadRankings,
		MatchDuration: upload.MatchDuration,
		Awards:        upload.Awards,
	}
}
