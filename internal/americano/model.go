// Package americano implements scheduling and standings for round-based,
// court-constrained tournaments such as Americano padel. The package is a
// pure library: every function maps inputs to outputs with no I/O and no
// shared state, so callers own all persistence and serialization of writes.
//
// All types are generic over the participant ID. Any comparable type works;
// the rest of this repo instantiates ID = string.
package americano

import "time"

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

// Mode selects how partnerships behave across rounds.
type Mode string

const (
	// ModeFixedTeams keeps the same partner pairs for the whole tournament.
	ModeFixedTeams Mode = "fixed_teams"
	// ModeRotating reshuffles partners every round via the circle method.
	ModeRotating Mode = "rotating"
)

// Court is a named slot that hosts at most one match per round.
type Court struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Team is a set of exactly teamSize players. In fixed mode a team lives for
// the whole tournament; in rotating mode it is recreated each round and its
// TeamID embeds the round number.
type Team[ID comparable] struct {
	TeamID    string `json:"team_id"`
	PlayerIDs []ID   `json:"player_ids"`
}

// Pair is a two-player team, the common Americano case.
type Pair[ID comparable] struct {
	Player1 ID `json:"player1"`
	Player2 ID `json:"player2"`
}

// Match is one scheduled encounter between two disjoint player sets.
// Scores and CompletedAt stay nil until a result is applied.
type Match[ID comparable] struct {
	ID          string      `json:"id"`
	RoundNumber int         `json:"round_number"`
	CourtID     string      `json:"court_id"`
	Team1       []ID        `json:"team1"`
	Team2       []ID        `json:"team2"`
	Status      MatchStatus `json:"status"`
	Team1Score  *int        `json:"team1_score,omitempty"`
	Team2Score  *int        `json:"team2_score,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// TeamMatchup is one unordered pair of teams that could meet.
type TeamMatchup[ID comparable] struct {
	Team1 Team[ID] `json:"team1"`
	Team2 Team[ID] `json:"team2"`
}

// SchedulingConfig is the sole input to GenerateSchedule. It is never
// mutated by the engine.
type SchedulingConfig[ID comparable] struct {
	ParticipantIDs      []ID       `json:"participant_ids"`
	Courts              []Court    `json:"courts"`
	MaxMatchesPerPlayer int        `json:"max_matches_per_player"`
	TeamSize            int        `json:"team_size"`
	PredefinedTeams     []Team[ID] `json:"predefined_teams,omitempty"`
}

// GeneratedSchedule is the sole output of GenerateSchedule.
type GeneratedSchedule[ID comparable] struct {
	TotalRounds       int         `json:"total_rounds"`
	Matches           []Match[ID] `json:"matches"`
	PlayerMatchCounts map[ID]int  `json:"player_match_counts"`
}
