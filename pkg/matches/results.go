package matches

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/prize"
	"github.com/chris/squad-arena/pkg/storage"
)

// ResultsPayload is the admin upload that completes a match.
type ResultsPayload struct {
	SquadRankings []models.SquadRanking `json:"squad_rankings"`
	MatchDuration int64                 `json:"match_duration"`
	// Awards maps a custom reward name to the winning squad ID.
	Awards map[string]string `json:"awards,omitempty"`
}

// UploadResults validates the payload, derives prize amounts from the match's
// prize distribution and records the results once. The match becomes completed.
func (e *Engine) UploadResults(ctx context.Context, matchID string, payload ResultsPayload) (*models.Match, error) {
	match, err := e.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.ResultsRecorded() {
		return nil, storage.ErrResultsAlreadyRecorded
	}
	if match.Status != models.MatchLive && match.Status != models.MatchCompleted {
		return nil, fmt.Errorf("%w: results need a live match, match is %s", storage.ErrInvalidMatchState, match.Status)
	}

	if err := validateResults(match, payload); err != nil {
		return nil, err
	}
	if err := prize.Validate(match.PrizeDistribution, match.PrizePool); err != nil {
		return nil, err
	}

	rankings, total, err := prize.Compute(match.PrizeDistribution, payload.SquadRankings, payload.Awards)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResultsPayloadInvalid, err)
	}

	completedAt := e.now()
	results := &models.Results{
		SquadRankings:     rankings,
		TotalParticipants: match.ActiveCount,
		MatchDuration:     payload.MatchDuration,
		TotalPaid:         total,
		IsCompleted:       true,
		CompletedAt:       &completedAt,
	}

	updated, err := e.store.RecordResults(ctx, matchID, results)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "match results recorded", "match_id", matchID, "squads", len(rankings), "total_paid", total)
	e.publish(ctx, notify.Event{Type: notify.EventResultsPublished, MatchID: matchID, UserIDs: updated.ActiveUserIDs})

	return updated, nil
}

func validateResults(match *models.Match, payload ResultsPayload) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(payload.SquadRankings) == 0 {
		add("squad rankings are required")
	}
	if payload.MatchDuration < 0 {
		add("match duration must not be negative")
	}

	squads := make(map[string]bool, len(payload.SquadRankings))
	ranks := make(map[int]bool, len(payload.SquadRankings))
	players := make(map[string]bool)
	for _, s := range payload.SquadRankings {
		switch {
		case s.SquadID == "":
			add("squad ID is required")
		case squads[s.SquadID]:
			add("squad %q listed twice", s.SquadID)
		}
		squads[s.SquadID] = true

		switch {
		case s.Rank < 1:
			add("squad %q has rank %d", s.SquadID, s.Rank)
		case ranks[s.Rank]:
			add("rank %d listed twice", s.Rank)
		}
		ranks[s.Rank] = true

		if s.Kills < 0 || s.Damage < 0 || s.SurvivalTime < 0 {
			add("squad %q has negative stats", s.SquadID)
		}

		for _, p := range s.Players {
			if p.Kills < 0 || p.Damage < 0 {
				add("player %q has negative stats", p.UserID)
			}
			if players[p.UserID] {
				add("player %q listed twice", p.UserID)
				continue
			}
			players[p.UserID] = true
			if _, reg := match.Registration(p.UserID); reg == nil {
				add("player %q is not registered for the match", p.UserID)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrResultsPayloadInvalid, strings.Join(problems, "; "))
	}
	return nil
}
