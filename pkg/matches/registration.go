package matches

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/storage"
)

// entryReference is the ledger reference of a user's nth entry into a match.
// It is stable for a given attempt, so a retried join cannot charge twice.
func entryReference(match *models.Match, userID string) string {
	attempt := 0
	for _, r := range match.RegisteredPlayers {
		if r.UserID == userID {
			attempt++
		}
	}
	return fmt.Sprintf("match:%s:entry:%d", match.ID, attempt)
}

// JoinMatch registers userID for a match and debits the entry fee. The slot
// and the debit are written together; neither happens without the other.
func (e *Engine) JoinMatch(ctx context.Context, matchID, userID, squadID string) (*models.Registration, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	match, err := e.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchUpcoming {
		return nil, fmt.Errorf("%w: registration is closed, match is %s", storage.ErrInvalidMatchState, match.Status)
	}
	if _, existing := match.Registration(userID); existing != nil {
		return nil, storage.ErrAlreadyRegistered
	}
	if match.ActiveCount >= match.MaxPlayers {
		return nil, storage.ErrMatchFull
	}

	now := e.now()
	reg := models.Registration{
		UserID:       userID,
		SquadID:      squadID,
		EntryFeePaid: match.EntryFee,
		Status:       models.RegistrationRegistered,
		RegisteredAt: now,
		UpdatedAt:    now,
	}

	var fee *models.Transaction
	if match.EntryFee > 0 {
		ok, err := e.wallets.CanAfford(ctx, userID, match.EntryFee)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, storage.ErrInsufficientBalance
		}

		reg.PaymentReference = entryReference(match, userID)
		fee = &models.Transaction{
			UserID:      userID,
			Type:        models.DEBIT,
			Amount:      match.EntryFee,
			Description: fmt.Sprintf("Entry fee for %s", match.Name),
			ReferenceID: reg.PaymentReference,
			Metadata:    map[string]string{"match_id": match.ID},
		}
	}

	updated, err := e.store.AddRegistration(ctx, matchID, reg, fee)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "player joined match", "match_id", matchID, "user_id", userID, "entry_fee", match.EntryFee)
	e.publish(ctx, notify.Event{Type: notify.EventPlayerJoined, MatchID: matchID, UserIDs: []string{userID}})

	if _, stored := updated.Registration(userID); stored != nil {
		return stored, nil
	}
	return &reg, nil
}

// LeaveMatch cancels userID's registration. An entry fee that was paid but
// not yet confirmed is refunded in the same write.
func (e *Engine) LeaveMatch(ctx context.Context, matchID, userID string) (*models.Match, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	match, err := e.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status.Terminal() {
		return nil, fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, match.Status)
	}

	index, reg := match.Registration(userID)
	if reg == nil {
		return nil, storage.ErrNotRegistered
	}

	var refund *models.Transaction
	if reg.Status == models.RegistrationRegistered && reg.EntryFeePaid > 0 {
		refund = &models.Transaction{
			UserID:      userID,
			Type:        models.CREDIT,
			Amount:      reg.EntryFeePaid,
			Description: fmt.Sprintf("Refund of entry fee for %s", match.Name),
			ReferenceID: "refund:" + reg.PaymentReference,
			Metadata:    map[string]string{"match_id": match.ID},
		}
	}

	updated, err := e.store.CancelRegistration(ctx, matchID, index, userID, refund)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "player left match", "match_id", matchID, "user_id", userID, "refunded", refund != nil)
	e.publish(ctx, notify.Event{Type: notify.EventPlayerLeft, MatchID: matchID, UserIDs: []string{userID}})

	return updated, nil
}

// ConfirmRegistration marks userID's entry as confirmed. Confirming an
// already confirmed entry is a no-op.
func (e *Engine) ConfirmRegistration(ctx context.Context, matchID, userID string) (*models.Match, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	match, err := e.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status.Terminal() {
		return nil, fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, match.Status)
	}

	index, reg := match.Registration(userID)
	if reg == nil {
		return nil, storage.ErrNotRegistered
	}
	if reg.Status == models.RegistrationConfirmed {
		return match, nil
	}

	return e.store.ConfirmRegistration(ctx, matchID, index, userID)
}
