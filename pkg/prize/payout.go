package prize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chris/squad-arena/pkg/models"
)

// ErrUnknownAward is returned when results name a custom reward that the
// distribution does not define, or award it to a squad that is not ranked.
var ErrUnknownAward = errors.New("unknown custom award")

// Compute derives prize amounts for every ranked squad from an already
// validated distribution. awards maps a custom reward name to the winning
// squad ID. The returned rankings are ordered by rank and the returned total
// never exceeds dist.Summary.TotalDistributed.
func Compute(dist models.PrizeDistribution, rankings []models.SquadRanking, awards map[string]string) ([]models.SquadRanking, int64, error) {
	out := make([]models.SquadRanking, len(rankings))
	copy(out, rankings)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	bySquad := make(map[string]int, len(out))
	for i := range out {
		out[i].RankPrize, out[i].KillPrize, out[i].CustomPrize, out[i].PrizeAmount = 0, 0, 0, 0
		bySquad[out[i].SquadID] = i
	}

	rankAmount := make(map[int]int64, len(dist.RankRewards.Ranks))
	for _, r := range dist.RankRewards.Ranks {
		rankAmount[r.Rank] = r.Amount
	}
	for i := range out {
		out[i].RankPrize = rankAmount[out[i].Rank]
	}

	killBudget := dist.KillRewards.Total
	for i := range out {
		kills := out[i].Kills
		if dist.KillRewards.MaxKills > 0 && kills > dist.KillRewards.MaxKills {
			kills = dist.KillRewards.MaxKills
		}
		amount := dist.KillRewards.PerKill * int64(kills)
		if amount > killBudget {
			amount = killBudget
		}
		out[i].KillPrize = amount
		killBudget -= amount
	}

	customAmount := make(map[string]int64, len(dist.CustomRewards))
	for _, c := range dist.CustomRewards {
		customAmount[c.Name] += c.Amount
	}
	for name, squadID := range awards {
		amount, ok := customAmount[name]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q is not part of the prize distribution", ErrUnknownAward, name)
		}
		idx, ok := bySquad[squadID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q awarded to unranked squad %q", ErrUnknownAward, name, squadID)
		}
		out[idx].CustomPrize += amount
	}

	var total int64
	for i := range out {
		out[i].PrizeAmount = out[i].RankPrize + out[i].KillPrize + out[i].CustomPrize
		total += out[i].PrizeAmount
		splitAmongPlayers(&out[i])
	}

	return out, total, nil
}

// splitAmongPlayers shares a squad's prize equally between its listed
// players; the remainder goes to the first one.
func splitAmongPlayers(s *models.SquadRanking) {
	n := int64(len(s.Players))
	if n == 0 {
		return
	}
	players := make([]models.PlayerResult, len(s.Players))
	copy(players, s.Players)
	share := s.PrizeAmount / n
	for i := range players {
		players[i].PrizeAmount = share
	}
	players[0].PrizeAmount += s.PrizeAmount - share*n
	s.Players = players
}
