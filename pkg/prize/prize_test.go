package prize

import (
	"errors"
	"testing"

	"github.com/chris/squad-arena/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDistribution() models.PrizeDistribution {
	return models.PrizeDistribution{
		RankRewards: models.RankRewards{
			Ranks: []models.RankReward{
				{Rank: 1, Label: "1st", Amount: 2500},
				{Rank: 2, Label: "2nd", Amount: 1500},
				{Rank: 3, Label: "3rd", Amount: 1000},
				{Rank: 4, Label: "4th", Amount: 0},
				{Rank: 5, Label: "5th", Amount: 0},
			},
			Total: 5000,
		},
		KillRewards:   models.KillRewards{PerKill: 100, MaxKills: 40, Total: 4000},
		CustomRewards: []models.CustomReward{{Name: "MVP", Amount: 1000}},
		Summary: models.PrizeSummary{
			RankRewardsTotal:   5000,
			KillRewardsTotal:   4000,
			CustomRewardsTotal: 1000,
			TotalDistributed:   10000,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("Accepts Reconciled Distribution", func(t *testing.T) {
		assert.NoError(t, Validate(sampleDistribution(), 10000))
	})

	tests := []struct {
		name   string
		mutate func(d *models.PrizeDistribution)
		pool   int64
		check  string
	}{
		{
			name:   "Rank Amount Changed Without Total",
			mutate: func(d *models.PrizeDistribution) { d.RankRewards.Ranks[1].Amount = 1400 },
			pool:   10000,
			check:  CheckRankTotal,
		},
		{
			name:   "Custom Total Mismatch",
			mutate: func(d *models.PrizeDistribution) { d.Summary.CustomRewardsTotal = 900 },
			pool:   10000,
			check:  CheckCustomTotal,
		},
		{
			name:   "Rank Summary Mismatch",
			mutate: func(d *models.PrizeDistribution) { d.Summary.RankRewardsTotal = 4500 },
			pool:   10000,
			check:  CheckRankSummary,
		},
		{
			name:   "Kill Summary Mismatch",
			mutate: func(d *models.PrizeDistribution) { d.KillRewards.Total = 3500 },
			pool:   10000,
			check:  CheckKillSummary,
		},
		{
			name:   "Grand Total Mismatch",
			mutate: func(d *models.PrizeDistribution) { d.Summary.TotalDistributed = 9500 },
			pool:   10000,
			check:  CheckGrandTotal,
		},
		{
			name:   "Exceeds Prize Pool",
			pool:   9999,
			check:  CheckPrizePool,
		},
		{
			name:   "Negative Rank Amount",
			mutate: func(d *models.PrizeDistribution) { d.RankRewards.Ranks[4].Amount = -1; d.RankRewards.Total = 4999 },
			pool:   10000,
			check:  CheckNegativeAmount,
		},
		{
			name:   "Duplicate Rank",
			mutate: func(d *models.PrizeDistribution) { d.RankRewards.Ranks[4].Rank = 4 },
			pool:   10000,
			check:  CheckDuplicateRank,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := sampleDistribution()
			if tc.mutate != nil {
				tc.mutate(&d)
			}

			err := Validate(d, tc.pool)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPrizeDistributionInvalid)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.check, verr.Check)
		})
	}

	t.Run("Kill Total Not Cross Checked", func(t *testing.T) {
		d := sampleDistribution()
		d.KillRewards.PerKill = 1
		d.KillRewards.MaxKills = 1
		assert.NoError(t, Validate(d, 10000))
	})
}

func TestCompute(t *testing.T) {
	rankings := []models.SquadRanking{
		{SquadID: "s2", Rank: 2, Kills: 10, Players: []models.PlayerResult{{UserID: "c"}, {UserID: "d"}}},
		{SquadID: "s1", Rank: 1, Kills: 25, Players: []models.PlayerResult{{UserID: "a"}, {UserID: "b"}, {UserID: "e"}}},
		{SquadID: "s3", Rank: 7, Kills: 0},
	}

	t.Run("Rank Kill And Custom", func(t *testing.T) {
		out, total, err := Compute(sampleDistribution(), rankings, map[string]string{"MVP": "s2"})

		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "s1", out[0].SquadID)
		assert.Equal(t, int64(2500), out[0].RankPrize)
		assert.Equal(t, int64(2500), out[0].KillPrize)
		assert.Equal(t, int64(5000), out[0].PrizeAmount)
		assert.Equal(t, int64(1668), out[0].Players[0].PrizeAmount)
		assert.Equal(t, int64(1666), out[0].Players[1].PrizeAmount)

		assert.Equal(t, int64(1500+1000+1000), out[1].PrizeAmount)
		assert.Equal(t, int64(1750), out[1].Players[1].PrizeAmount)

		assert.Equal(t, int64(0), out[2].PrizeAmount)
		assert.Equal(t, int64(8500), total)
		assert.LessOrEqual(t, total, sampleDistribution().Summary.TotalDistributed)
	})

	t.Run("Kill Budget Is Never Exceeded", func(t *testing.T) {
		heavy := []models.SquadRanking{
			{SquadID: "s1", Rank: 1, Kills: 40},
			{SquadID: "s2", Rank: 2, Kills: 40},
		}

		out, _, err := Compute(sampleDistribution(), heavy, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(4000), out[0].KillPrize)
		assert.Equal(t, int64(0), out[1].KillPrize)
	})

	t.Run("Max Kills Caps Squad", func(t *testing.T) {
		d := sampleDistribution()
		d.KillRewards.MaxKills = 5

		out, _, err := Compute(d, []models.SquadRanking{{SquadID: "s1", Rank: 1, Kills: 30}}, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(500), out[0].KillPrize)
	})

	t.Run("Unknown Award", func(t *testing.T) {
		_, _, err := Compute(sampleDistribution(), rankings, map[string]string{"Sniper": "s1"})
		assert.ErrorIs(t, err, ErrUnknownAward)
	})

	t.Run("Award To Unranked Squad", func(t *testing.T) {
		_, _, err := Compute(sampleDistribution(), rankings, map[string]string{"MVP": "ghost"})
		assert.ErrorIs(t, err, ErrUnknownAward)
	})

	t.Run("Input Is Not Mutated", func(t *testing.T) {
		_, _, err := Compute(sampleDistribution(), rankings, nil)
		require.NoError(t, err)
		assert.Equal(t, "s2", rankings[0].SquadID)
		assert.Equal(t, int64(0), rankings[0].Players[0].PrizeAmount)
	})
}
