package matches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/prize"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/google/uuid"
)

// MatchSpec holds the admin-editable attributes of a match.
type MatchSpec struct {
	Name              string                   `json:"name"`
	EntryFee          int64                    `json:"entry_fee"`
	PrizePool         int64                    `json:"prize_pool"`
	MaxPlayers        int                      `json:"max_players"`
	Map               models.MatchMap          `json:"map"`
	StartTime         time.Time                `json:"start_time"`
	PrizeDistribution models.PrizeDistribution `json:"prize_distribution"`
}

func (s MatchSpec) validate() error {
	var problems []string
	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}
	if s.EntryFee < 0 {
		problems = append(problems, "entry fee must not be negative")
	}
	if s.PrizePool < 0 {
		problems = append(problems, "prize pool must not be negative")
	}
	if s.MaxPlayers < 1 || s.MaxPlayers > MaxPlayersLimit {
		problems = append(problems, fmt.Sprintf("max players must be between 1 and %d", MaxPlayersLimit))
	}
	if !s.Map.Valid() {
		problems = append(problems, fmt.Sprintf("unknown map %q", s.Map))
	}
	if s.StartTime.IsZero() {
		problems = append(problems, "start time is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidMatchSpec, strings.Join(problems, "; "))
	}
	return prize.Validate(s.PrizeDistribution, s.PrizePool)
}

// CreateMatch validates spec and stores a new upcoming match.
func (e *Engine) CreateMatch(ctx context.Context, spec MatchSpec) (*models.Match, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	now := e.now()
	match := &models.Match{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(spec.Name),
		EntryFee:          spec.EntryFee,
		PrizePool:         spec.PrizePool,
		MaxPlayers:        spec.MaxPlayers,
		Map:               spec.Map,
		StartTime:         spec.StartTime.UTC(),
		Status:            models.MatchUpcoming,
		PrizeDistribution: spec.PrizeDistribution,
		RegisteredPlayers: []models.Registration{},
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := e.store.CreateMatch(ctx, match)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "match created", "match_id", created.ID, "start_time", created.StartTime)
	return created, nil
}

// UpdateMatch replaces the attributes of a match that is still upcoming or live.
func (e *Engine) UpdateMatch(ctx context.Context, matchID string, spec MatchSpec) (*models.Match, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	return e.store.UpdateMatchDetails(ctx, &models.Match{
		ID:                matchID,
		Name:              strings.TrimSpace(spec.Name),
		EntryFee:          spec.EntryFee,
		PrizePool:         spec.PrizePool,
		MaxPlayers:        spec.MaxPlayers,
		Map:               spec.Map,
		StartTime:         spec.StartTime.UTC(),
		PrizeDistribution: spec.PrizeDistribution,
	})
}

// GetMatch returns a match by ID.
func (e *Engine) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	return e.store.GetMatch(ctx, matchID)
}

// ListMatches returns all matches, or only those in status when it is set.
func (e *Engine) ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidMatchSpec, status)
	}
	return e.store.ListMatches(ctx, status)
}

// adminTransitions lists the status changes an admin may request directly.
// Completion goes through UploadResults or AutoUpdateStatuses.
var adminTransitions = map[models.MatchStatus][]models.MatchStatus{
	models.MatchUpcoming: {models.MatchLive, models.MatchCancelled},
	models.MatchLive:     {models.MatchCancelled},
}

func allowed(from, to models.MatchStatus) bool {
	for _, s := range adminTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SetStatus performs an admin status transition.
func (e *Engine) SetStatus(ctx context.Context, matchID string, to models.MatchStatus) (*models.Match, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidMatchSpec, to)
	}

	match, err := e.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !allowed(match.Status, to) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", storage.ErrInvalidMatchState, match.Status, to)
	}

	return e.transition(ctx, match, to)
}

func (e *Engine) transition(ctx context.Context, match *models.Match, to models.MatchStatus) (*models.Match, error) {
	updated, err := e.store.TransitionMatchStatus(ctx, match.ID, match.Status, to)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "match status changed", "match_id", match.ID, "from", match.Status, "to", to)
	e.publish(ctx, notify.Event{
		Type:    notify.EventMatchStatusChanged,
		MatchID: match.ID,
		UserIDs: updated.ActiveUserIDs,
		Payload: notify.MatchStatusPayload{From: string(match.Status), To: string(to)},
	})
	return updated, nil
}

// AutoUpdateStatuses moves upcoming matches whose start time has passed to
// live and, when CompleteAfter is set, live matches that started at least
// CompleteAfter ago to completed. Every move is conditional on the status the
// match was read in, so a match never moves backwards. It returns the number
// of matches moved.
func (e *Engine) AutoUpdateStatuses(ctx context.Context, now time.Time) (int, error) {
	var moved int
	var errs []error

	step := func(from, to models.MatchStatus, startedBefore time.Time) {
		candidates, err := e.store.ListMatchesStartedBefore(ctx, from, startedBefore)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to list %s matches: %w", from, err))
			return
		}
		for i := range candidates {
			match := &candidates[i]
			if match.Status != from || match.StartTime.After(startedBefore) {
				continue
			}
			if _, err := e.transition(ctx, match, to); err != nil {
				if errors.Is(err, storage.ErrInvalidMatchState) {
					continue
				}
				slog.ErrorContext(ctx, "failed to auto-update match", "match_id", match.ID, "error", err)
				errs = append(errs, fmt.Errorf("match %s: %w", match.ID, err))
				continue
			}
			moved++
		}
	}

	step(models.MatchUpcoming, models.MatchLive, now)
	if e.cfg.CompleteAfter > 0 {
		step(models.MatchLive, models.MatchCompleted, now.Add(-e.cfg.CompleteAfter))
	}

	return moved, errors.Join(errs...)
}
