package models

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s MatchStatus) Terminal() bool {
	return s == MatchCompleted || s == MatchCancelled
}

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchUpcoming, MatchLive, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

// MatchMap is one of the fixed venues a match can be played on.
type MatchMap string

const (
	MapErangel MatchMap = "Erangel"
	MapMiramar MatchMap = "Miramar"
	MapSanhok  MatchMap = "Sanhok"
	MapVikendi MatchMap = "Vikendi"
	MapLivik   MatchMap = "Livik"
)

// Valid reports whether m is a supported venue.
func (m MatchMap) Valid() bool {
	switch m {
	case MapErangel, MapMiramar, MapSanhok, MapVikendi, MapLivik:
		return true
	}
	return false
}

// RegistrationStatus is the state of a single player's entry in a match.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationConfirmed  RegistrationStatus = "confirmed"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

// RankReward pays Amount to the squad finishing at Rank.
type RankReward struct {
	Rank   int    `json:"rank" dynamodbav:"rank"`
	Label  string `json:"label" dynamodbav:"label"`
	Amount int64  `json:"amount" dynamodbav:"amount"`
}

type RankRewards struct {
	Ranks []RankReward `json:"ranks" dynamodbav:"ranks"`
	Total int64        `json:"total" dynamodbav:"total"`
}

// KillRewards pays PerKill for every kill up to MaxKills.
// Total is the declared budget; it is not cross-checked against PerKill*MaxKills.
type KillRewards struct {
	PerKill  int64 `json:"per_kill" dynamodbav:"per_kill"`
	MaxKills int   `json:"max_kills" dynamodbav:"max_kills"`
	Total    int64 `json:"total" dynamodbav:"total"`
}

// CustomReward is a named bonus such as "MVP".
type CustomReward struct {
	Name   string `json:"name" dynamodbav:"name"`
	Amount int64  `json:"amount" dynamodbav:"amount"`
}

// PrizeSummary declares the expected total of each reward category. Each
// field must equal the total of its category and TotalDistributed their sum.
type PrizeSummary struct {
	RankRewardsTotal   int64 `json:"rank_rewards_total" dynamodbav:"rank_rewards_total"`
	KillRewardsTotal   int64 `json:"kill_rewards_total" dynamodbav:"kill_rewards_total"`
	CustomRewardsTotal int64 `json:"custom_rewards_total" dynamodbav:"custom_rewards_total"`
	TotalDistributed   int64 `json:"total_distributed" dynamodbav:"total_distributed"`
}

type PrizeDistribution struct {
	RankRewards   RankRewards    `json:"rank_rewards" dynamodbav:"rank_rewards"`
	KillRewards   KillRewards    `json:"kill_rewards" dynamodbav:"kill_rewards"`
	CustomRewards []CustomReward `json:"custom_rewards" dynamodbav:"custom_rewards"`
	Summary       PrizeSummary   `json:"summary" dynamodbav:"summary"`
}

// Registration is one entry of a match's registered players list.
// Entries are never removed; leaving flips Status to cancelled.
type Registration struct {
	UserID           string             `json:"user_id" dynamodbav:"user_id"`
	SquadID          string             `json:"squad_id,omitempty" dynamodbav:"squad_id,omitempty"`
	EntryFeePaid     int64              `json:"entry_fee_paid" dynamodbav:"entry_fee_paid"`
	PaymentReference string             `json:"payment_reference,omitempty" dynamodbav:"payment_reference,omitempty"`
	Status           RegistrationStatus `json:"status" dynamodbav:"status"`
	RegisteredAt     time.Time          `json:"registered_at" dynamodbav:"registered_at"`
	UpdatedAt        time.Time          `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the registration still occupies a slot.
func (r Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

type PlayerResult struct {
	UserID      string `json:"user_id" dynamodbav:"user_id"`
	Kills       int    `json:"kills" dynamodbav:"kills"`
	Damage      int64  `json:"damage" dynamodbav:"damage"`
	PrizeAmount int64  `json:"prize_amount" dynamodbav:"prize_amount"`
}

type SquadRanking struct {
	SquadID      string         `json:"squad_id" dynamodbav:"squad_id"`
	Rank         int            `json:"rank" dynamodbav:"rank"`
	Kills        int            `json:"kills" dynamodbav:"kills"`
	Damage       int64          `json:"damage" dynamodbav:"damage"`
	SurvivalTime int64          `json:"survival_time" dynamodbav:"survival_time"`
	RankPrize    int64          `json:"rank_prize" dynamodbav:"rank_prize"`
	KillPrize    int64          `json:"kill_prize" dynamodbav:"kill_prize"`
	CustomPrize  int64          `json:"custom_prize" dynamodbav:"custom_prize"`
	PrizeAmount  int64          `json:"prize_amount" dynamodbav:"prize_amount"`
	Players      []PlayerResult `json:"players,omitempty" dynamodbav:"players,omitempty"`
}

// Results is written exactly once, when the match completes.
type Results struct {
	SquadRankings     []SquadRanking `json:"squad_rankings" dynamodbav:"squad_rankings"`
	TotalParticipants int            `json:"total_participants" dynamodbav:"total_participants"`
	MatchDuration     int64          `json:"match_duration" dynamodbav:"match_duration"`
	TotalPaid         int64          `json:"total_paid" dynamodbav:"total_paid"`
	IsCompleted       bool           `json:"is_completed" dynamodbav:"is_completed"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

// Match is a single tournament match document.
// ActiveCount and ActiveUserIDs mirror the non-cancelled entries of
// RegisteredPlayers so capacity and uniqueness can be enforced in one
// conditional write.
type Match struct {
	ID                string            `json:"id" dynamodbav:"id"`
	Name              string            `json:"name" dynamodbav:"name"`
	EntryFee          int64             `json:"entry_fee" dynamodbav:"entry_fee"`
	PrizePool         int64             `json:"prize_pool" dynamodbav:"prize_pool"`
	MaxPlayers        int               `json:"max_players" dynamodbav:"max_players"`
	Map               MatchMap          `json:"map" dynamodbav:"map"`
	StartTime         time.Time         `json:"start_time" dynamodbav:"start_time"`
	Status            MatchStatus       `json:"status" dynamodbav:"status"`
	PrizeDistribution PrizeDistribution `json:"prize_distribution" dynamodbav:"prize_distribution"`
	RegisteredPlayers []Registration    `json:"registered_players" dynamodbav:"registered_players"`
	ActiveCount       int               `json:"active_count" dynamodbav:"active_count"`
	ActiveUserIDs     []string          `json:"-" dynamodbav:"active_user_ids,stringset,omitempty"`
	Results           *Results          `json:"results,omitempty" dynamodbav:"results,omitempty"`
	Version           int64             `json:"version" dynamodbav:"version"`
	CreatedAt         time.Time         `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" dynamodbav:"updated_at"`
}

// Registration returns the index and entry of userID's active registration.
func (m *Match) Registration(userID string) (int, *Registration) {
	for i := range m.RegisteredPlayers {
		r := &m.RegisteredPlayers[i]
		if r.UserID == userID && r.Active() {
			return i, r
		}
	}
	return -1, nil
}

// ResultsRecorded reports whether final results have already been written.
func (m *Match) ResultsRecorded() bool {
	return m.Results != nil && m.Results.IsCompleted
}
