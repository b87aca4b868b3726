// Package prize validates match prize distributions and derives payouts
// from final squad rankings.
package prize

import (
	"errors"
	"fmt"

	"github.com/chris/squad-arena/pkg/models"
)

// ErrPrizeDistributionInvalid is matched by every ValidationError.
var ErrPrizeDistributionInvalid = errors.New("prize distribution invalid")

// Names of the individual reconciliation checks.
const (
	CheckNegativeAmount = "negative_amount"
	CheckDuplicateRank  = "duplicate_rank"
	CheckRankTotal      = "rank_total"
	CheckRankSummary    = "rank_summary"
	CheckKillSummary    = "kill_summary"
	CheckCustomTotal    = "custom_total"
	CheckGrandTotal     = "grand_total"
	CheckPrizePool      = "prize_pool"
)

// ValidationError identifies which reconciliation check failed.
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("prize distribution invalid (%s): %s", e.Check, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrPrizeDistributionInvalid
}

func invalid(check, format string, args ...any) *ValidationError {
	return &ValidationError{Check: check, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that a prize distribution is internally consistent and fits
// within prizePool. It has no side effects.
func Validate(dist models.PrizeDistribution, prizePool int64) error {
	if prizePool < 0 {
		return invalid(CheckNegativeAmount, "prize pool %d is negative", prizePool)
	}
	if dist.RankRewards.Total < 0 || dist.KillRewards.Total < 0 || dist.KillRewards.PerKill < 0 || dist.KillRewards.MaxKills < 0 {
		return invalid(CheckNegativeAmount, "reward totals and kill parameters must not be negative")
	}

	var rankTotal int64
	seen := make(map[int]struct{}, len(dist.RankRewards.Ranks))
	for _, r := range dist.RankRewards.Ranks {
		if r.Amount < 0 {
			return invalid(CheckNegativeAmount, "rank %d has negative amount %d", r.Rank, r.Amount)
		}
		if _, dup := seen[r.Rank]; dup {
			return invalid(CheckDuplicateRank, "rank %d is listed more than once", r.Rank)
		}
		seen[r.Rank] = struct{}{}
		rankTotal += r.Amount
	}
	if rankTotal != dist.RankRewards.Total {
		return invalid(CheckRankTotal, "rank rewards sum to %d but total is declared as %d", rankTotal, dist.RankRewards.Total)
	}
	if rankTotal != dist.Summary.RankRewardsTotal {
		return invalid(CheckRankSummary, "rank rewards total %d but summary declares %d", rankTotal, dist.Summary.RankRewardsTotal)
	}

	var customTotal int64
	for _, c := range dist.CustomRewards {
		if c.Amount < 0 {
			return invalid(CheckNegativeAmount, "custom reward %q has negative amount %d", c.Name, c.Amount)
		}
		customTotal += c.Amount
	}
	if customTotal != dist.Summary.CustomRewardsTotal {
		return invalid(CheckCustomTotal, "custom rewards sum to %d but summary declares %d", customTotal, dist.Summary.CustomRewardsTotal)
	}

	// Kill total is taken as declared.
	killTotal := dist.KillRewards.Total
	if killTotal != dist.Summary.KillRewardsTotal {
		return invalid(CheckKillSummary, "kill rewards total %d but summary declares %d", killTotal, dist.Summary.KillRewardsTotal)
	}

	grandTotal := rankTotal + customTotal + killTotal
	if grandTotal != dist.Summary.TotalDistributed {
		return invalid(CheckGrandTotal, "rank %d + custom %d + kill %d = %d but summary declares %d distributed",
			rankTotal, customTotal, killTotal, grandTotal, dist.Summary.TotalDistributed)
	}

	if grandTotal > prizePool {
		return invalid(CheckPrizePool, "distributed total %d exceeds prize pool %d", grandTotal, prizePool)
	}

	return nil
}
