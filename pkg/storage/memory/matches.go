package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// CreateMatch stores a new match.
func (s *Store) CreateMatch(ctx context.Context, match *models.Match) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[match.ID]; ok {
		return nil, fmt.Errorf("%w: ID %s", storage.ErrMatchExists, match.ID)
	}
	if err := put(s.matches, match.ID, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch retrieves a match by its ID.
func (s *Store) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMatch(matchID)
}

func (s *Store) getMatch(matchID string) (*models.Match, error) {
	m, ok, err := get[models.Match](s.matches, matchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: ID %s", storage.ErrMatchNotFound, matchID)
	}
	return m, nil
}

func (s *Store) saveMatch(m *models.Match) (*models.Match, error) {
	m.UpdatedAt = now()
	m.Version++
	if err := put(s.matches, m.ID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMatches retrieves all matches, or only those in status.
func (s *Store) ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	return s.filterMatches(func(m models.Match) bool {
		return status == "" || m.Status == status
	})
}

// ListMatchesStartedBefore retrieves matches in status that started at or before t.
func (s *Store) ListMatchesStartedBefore(ctx context.Context, status models.MatchStatus, t time.Time) ([]models.Match, error) {
	return s.filterMatches(func(m models.Match) bool {
		return m.Status == status && !m.StartTime.After(t)
	})
}

func (s *Store) filterMatches(keep func(models.Match) bool) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := all[models.Match](s.matches)
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// UpdateMatchDetails replaces the editable fields of a non-terminal match.
func (s *Store) UpdateMatchDetails(ctx context.Context, match *models.Match) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(match.ID)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, current.Status)
	}
	if current.ActiveCount > match.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players registered", storage.ErrCapacityBelowRegistrations, current.ActiveCount)
	}

	current.Name = match.Name
	current.EntryFee = match.EntryFee
	current.PrizePool = match.PrizePool
	current.MaxPlayers = match.MaxPlayers
	current.Map = match.Map
	current.StartTime = match.StartTime.UTC()
	current.PrizeDistribution = match.PrizeDistribution
	return s.saveMatch(current)
}

// TransitionMatchStatus moves a match from one status to another.
func (s *Store) TransitionMatchStatus(ctx context.Context, matchID string, from, to models.MatchStatus) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if current.Status != from {
		return nil, fmt.Errorf("%w: match is %s, not %s", storage.ErrInvalidMatchState, current.Status, from)
	}
	current.Status = to
	return s.saveMatch(current)
}

// AddRegistration appends reg and debits the fee in one step.
func (s *Store) AddRegistration(ctx context.Context, matchID string, reg models.Registration, fee *models.Transaction) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.MatchUpcoming {
		return nil, fmt.Errorf("%w: registration is closed, match is %s", storage.ErrInvalidMatchState, current.Status)
	}
	if _, existing := current.Registration(reg.UserID); existing != nil {
		return nil, storage.ErrAlreadyRegistered
	}
	if current.ActiveCount >= current.MaxPlayers {
		return nil, storage.ErrMatchFull
	}
	if current.EntryFee != reg.EntryFeePaid {
		return nil, storage.ErrConcurrentUpdate
	}

	var wallet *models.Wallet
	if fee != nil {
		prepare(fee, models.SUCCESS)
		if wallet, err = s.applyLocked(fee); err != nil {
			return nil, err
		}
	}

	current.RegisteredPlayers = append(current.RegisteredPlayers, reg)
	current.ActiveCount++
	current.ActiveUserIDs = append(current.ActiveUserIDs, reg.UserID)

	if wallet != nil {
		if err := s.commit(wallet, fee); err != nil {
			return nil, err
		}
	}
	return s.saveMatch(current)
}

// CancelRegistration cancels the entry at index and credits the optional refund.
func (s *Store) CancelRegistration(ctx context.Context, matchID string, index int, userID string, refund *models.Transaction) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := checkEntry(current, index, userID); err != nil {
		return nil, err
	}
	entry := &current.RegisteredPlayers[index]
	if refund != nil && entry.Status != models.RegistrationRegistered {
		return nil, storage.ErrConcurrentUpdate
	}

	var wallet *models.Wallet
	if refund != nil {
		prepare(refund, models.SUCCESS)
		if wallet, err = s.applyLocked(refund); err != nil {
			return nil, err
		}
	}

	entry.Status = models.RegistrationCancelled
	entry.UpdatedAt = now()
	current.ActiveCount--
	ids := current.ActiveUserIDs[:0]
	for _, id := range current.ActiveUserIDs {
		if id != userID {
			ids = append(ids, id)
		}
	}
	current.ActiveUserIDs = ids

	if wallet != nil {
		if err := s.commit(wallet, refund); err != nil {
			return nil, err
		}
	}
	return s.saveMatch(current)
}

// ConfirmRegistration moves the entry at index from registered to confirmed.
func (s *Store) ConfirmRegistration(ctx context.Context, matchID string, index int, userID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := checkEntry(current, index, userID); err != nil {
		return nil, err
	}
	entry := &current.RegisteredPlayers[index]
	if entry.Status != models.RegistrationRegistered {
		return nil, storage.ErrConcurrentUpdate
	}
	entry.Status = models.RegistrationConfirmed
	entry.UpdatedAt = now()
	return s.saveMatch(current)
}

func checkEntry(m *models.Match, index int, userID string) error {
	if m.Status.Terminal() {
		return fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, m.Status)
	}
	if index < 0 || index >= len(m.RegisteredPlayers) {
		return storage.ErrNotRegistered
	}
	entry := m.RegisteredPlayers[index]
	if entry.UserID != userID || !entry.Active() {
		return storage.ErrNotRegistered
	}
	return nil
}

// RecordResults writes results once and completes the match.
func (s *Store) RecordResults(ctx context.Context, matchID string, results *models.Results) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if current.ResultsRecorded() {
		return nil, storage.ErrResultsAlreadyRecorded
	}
	if current.Status != models.MatchLive && current.Status != models.MatchCompleted {
		return nil, fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, current.Status)
	}
	current.Results = results
	current.Status = models.MatchCompleted
	return s.saveMatch(current)
}
