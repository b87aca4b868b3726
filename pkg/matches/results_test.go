package matches

import (
	"context"
	"testing"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveMatch creates a free match with u1..u4 registered in two squads and starts it.
func liveMatch(t *testing.T, h *harness) *models.Match {
	t.Helper()
	ctx := context.Background()
	m := h.match(t, func(s *MatchSpec) { s.EntryFee = 0 })
	for user, squad := range map[string]string{"u1": "alpha", "u2": "alpha", "u3": "bravo", "u4": "bravo"} {
		_, err := h.engine.JoinMatch(ctx, m.ID, user, squad)
		require.NoError(t, err)
	}
	live, err := h.engine.SetStatus(ctx, m.ID, models.MatchLive)
	require.NoError(t, err)
	return live
}

func samplePayload() ResultsPayload {
	return ResultsPayload{
		SquadRankings: []models.SquadRanking{
			{
				SquadID: "bravo", Rank: 2, Kills: 3, Damage: 900, SurvivalTime: 1500,
				Players: []models.PlayerResult{{UserID: "u3", Kills: 2}, {UserID: "u4", Kills: 1}},
			},
			{
				SquadID: "alpha", Rank: 1, Kills: 5, Damage: 1400, SurvivalTime: 1800,
				Players: []models.PlayerResult{{UserID: "u1", Kills: 4}, {UserID: "u2", Kills: 1}},
			},
		},
		MatchDuration: 1800,
		Awards:        map[string]string{"MVP": "alpha"},
	}
}

func TestUploadResults(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		h := newHarness(t, nil, Config{})
		m := liveMatch(t, h)

		completed, err := h.engine.UploadResults(ctx, m.ID, samplePayload())

		require.NoError(t, err)
		assert.Equal(t, models.MatchCompleted, completed.Status)
		require.NotNil(t, completed.Results)
		assert.True(t, completed.Results.IsCompleted)
		assert.NotNil(t, completed.Results.CompletedAt)
		assert.Equal(t, 4, completed.Results.TotalParticipants)

		rankings := completed.Results.SquadRankings
		require.Len(t, rankings, 2)
		assert.Equal(t, "alpha", rankings[0].SquadID)
		assert.Equal(t, int64(600+50+100), rankings[0].PrizeAmount)
		assert.Equal(t, int64(200+30), rankings[1].PrizeAmount)
		assert.Equal(t, int64(980), completed.Results.TotalPaid)
		assert.LessOrEqual(t, completed.Results.TotalPaid, completed.PrizeDistribution.Summary.TotalDistributed)
	})

	t.Run("Results Are Written Once", func(t *testing.T) {
		h := newHarness(t, nil, Config{})
		m := liveMatch(t, h)
		_, err := h.engine.UploadResults(ctx, m.ID, samplePayload())
		require.NoError(t, err)

		_, err = h.engine.UploadResults(ctx, m.ID, samplePayload())

		assert.ErrorIs(t, err, storage.ErrResultsAlreadyRecorded)
	})

	t.Run("Auto Completed Match Accepts Results", func(t *testing.T) {
		h := newHarness(t, nil, Config{})
		m := liveMatch(t, h)
		_, err := h.store.TransitionMatchStatus(ctx, m.ID, models.MatchLive, models.MatchCompleted)
		require.NoError(t, err)

		completed, err := h.engine.UploadResults(ctx, m.ID, samplePayload())

		require.NoError(t, err)
		assert.True(t, completed.ResultsRecorded())
	})

	t.Run("Upcoming Match", func(t *testing.T) {
		h := newHarness(t, nil, Config{})
		m := h.match(t, nil)

		_, err := h.engine.UploadResults(ctx, m.ID, samplePayload())

		assert.ErrorIs(t, err, storage.ErrInvalidMatchState)
	})

	tests := []struct {
		name   string
		mutate func(p *ResultsPayload)
	}{
		{"No Rankings", func(p *ResultsPayload) { p.SquadRankings = nil }},
		{"Duplicate Rank", func(p *ResultsPayload) { p.SquadRankings[0].Rank = 1 }},
		{"Zero Rank", func(p *ResultsPayload) { p.SquadRankings[0].Rank = 0 }},
		{"Duplicate Squad", func(p *ResultsPayload) { p.SquadRankings[0].SquadID = "alpha" }},
		{"Negative Kills", func(p *ResultsPayload) { p.SquadRankings[0].Kills = -1 }},
		{"Unregistered Player", func(p *ResultsPayload) { p.SquadRankings[0].Players[0].UserID = "intruder" }},
		{"Player In Two Squads", func(p *ResultsPayload) { p.SquadRankings[0].Players[0].UserID = "u1" }},
		{"Unknown Award", func(p *ResultsPayload) { p.Awards = map[string]string{"Sniper": "alpha"} }},
		{"Award To Unranked Squad", func(p *ResultsPayload) { p.Awards = map[string]string{"MVP": "charlie"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil, Config{})
			m := liveMatch(t, h)

			payload := samplePayload()
			tt.mutate(&payload)
			_, err := h.engine.UploadResults(ctx, m.ID, payload)

			assert.ErrorIs(t, err, ErrResultsPayloadInvalid)
			stored, err := h.engine.GetMatch(ctx, m.ID)
			require.NoError(t, err)
			assert.Equal(t, models.MatchLive, stored.Status)
			assert.Nil(t, stored.Results)
		})
	}
}
