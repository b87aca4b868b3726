package matches

import (
	"context"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/storage/memory"
	"github.com/stretchr/testify/require"
)

type harness struct {
	engine *Engine
	ledger *ledger.Service
	store  *memory.Store
}

func newHarness(t *testing.T, publisher notify.Publisher, cfg Config) *harness {
	t.Helper()
	store := memory.New()
	wallets := ledger.NewService(store, nil)
	return &harness{
		engine: NewEngine(store, wallets, publisher, cfg),
		ledger: wallets,
		store:  store,
	}
}

func (h *harness) wallet(t *testing.T, userID string, balance int64) {
	t.Helper()
	_, err := h.ledger.CreateWallet(context.Background(), userID, userID, userID+"@example.com", balance)
	require.NoError(t, err)
}

func (h *harness) balance(t *testing.T, userID string) int64 {
	t.Helper()
	b, err := h.ledger.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return b
}

func sampleDistribution() models.PrizeDistribution {
	return models.PrizeDistribution{
		RankRewards: models.RankRewards{
			Ranks: []models.RankReward{
				{Rank: 1, Label: "Winner", Amount: 600},
				{Rank: 2, Label: "Runner-up", Amount: 200},
			},
			Total: 800,
		},
		KillRewards:   models.KillRewards{PerKill: 10, MaxKills: 10, Total: 100},
		CustomRewards: []models.CustomReward{{Name: "MVP", Amount: 100}},
		Summary: models.PrizeSummary{
			RankRewardsTotal:   800,
			KillRewardsTotal:   100,
			CustomRewardsTotal: 100,
			TotalDistributed:   1000,
		},
	}
}

func sampleSpec() MatchSpec {
	return MatchSpec{
		Name:              "Friday Scrims",
		EntryFee:          100,
		PrizePool:         1000,
		MaxPlayers:        4,
		Map:               models.MapErangel,
		StartTime:         time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC),
		PrizeDistribution: sampleDistribution(),
	}
}

func (h *harness) match(t *testing.T, mutate func(*MatchSpec)) *models.Match {
	t.Helper()
	spec := sampleSpec()
	if mutate != nil {
		mutate(&spec)
	}
	m, err := h.engine.CreateMatch(context.Background(), spec)
	require.NoError(t, err)
	return m
}
