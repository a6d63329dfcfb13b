package americano

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/americano/internal/utils"
)

// GenerateSchedule produces the full multi-round schedule for the given
// configuration. Both modes are greedy sort-then-scan heuristics, not exact
// optimizers: fixed mode prefers team pairs that have met least (opponent
// variety), rotating mode relies on the rotation for variety and balances
// workload only. The result always respects the per-player match cap and
// never books a player twice in the same round.
func GenerateSchedule[ID comparable](config SchedulingConfig[ID], mode Mode) (*GeneratedSchedule[ID], error) {
	if len(config.Courts) == 0 {
		return nil, configErrorf("at least one court is required")
	}
	if len(config.ParticipantIDs) == 0 {
		return nil, configErrorf("at least one participant is required")
	}

	switch mode {
	case ModeFixedTeams:
		return generateFixedTeamsSchedule(config)
	case ModeRotating:
		return generateRotatingSchedule(config)
	default:
		return nil, configErrorf("unknown scheduling mode %q", mode)
	}
}

func generateFixedTeamsSchedule[ID comparable](config SchedulingConfig[ID]) (*GeneratedSchedule[ID], error) {
	teams, err := GenerateFixedTeams(config.ParticipantIDs, config.TeamSize, config.PredefinedTeams)
	if err != nil {
		return nil, err
	}
	matchups := AllTeamMatchups(teams)

	opponentCounts := make(map[string]int, len(matchups))
	playerCounts := make(map[ID]int, len(config.ParticipantIDs))
	for _, id := range config.ParticipantIDs {
		playerCounts[id] = 0
	}

	var matches []Match[ID]
	round := 0

	for {
		candidates := make([]TeamMatchup[ID], 0, len(matchups))
		for _, m := range matchups {
			if teamUnderCap(m.Team1, playerCounts, config.MaxMatchesPerPlayer) &&
				teamUnderCap(m.Team2, playerCounts, config.MaxMatchesPerPlayer) {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			break
		}

		// Least-played-against pairs first, combined player workload as
		// the tiebreak. Stable so equal candidates keep enumeration order.
		slices.SortStableFunc(candidates, func(a, b TeamMatchup[ID]) int {
			if d := opponentCounts[matchupKey(a)] - opponentCounts[matchupKey(b)]; d != 0 {
				return d
			}
			return matchupLoad(a, playerCounts) - matchupLoad(b, playerCounts)
		})

		round++
		busy := make(map[string]bool, len(teams))
		var placed []TeamMatchup[ID]

		for _, m := range candidates {
			if len(placed) >= len(config.Courts) {
				break
			}
			if busy[m.Team1.TeamID] || busy[m.Team2.TeamID] {
				continue
			}
			matches = append(matches, Match[ID]{
				ID:          uuid.NewString(),
				RoundNumber: round,
				CourtID:     config.Courts[len(placed)].ID,
				Team1:       m.Team1.PlayerIDs,
				Team2:       m.Team2.PlayerIDs,
				Status:      MatchScheduled,
			})
			busy[m.Team1.TeamID] = true
			busy[m.Team2.TeamID] = true
			placed = append(placed, m)
		}

		if len(placed) == 0 {
			// No legal pairing left even though candidates remain
			// (every candidate shares a team). Without this the loop
			// would never terminate.
			round--
			break
		}

		for _, m := range placed {
			opponentCounts[matchupKey(m)]++
			for _, id := range m.Team1.PlayerIDs {
				playerCounts[id]++
			}
			for _, id := range m.Team2.PlayerIDs {
				playerCounts[id]++
			}
		}
	}

	return &GeneratedSchedule[ID]{
		TotalRounds:       round,
		Matches:           matches,
		PlayerMatchCounts: playerCounts,
	}, nil
}

func generateRotatingSchedule[ID comparable](config SchedulingConfig[ID]) (*GeneratedSchedule[ID], error) {
	n := len(config.ParticipantIDs)

	// Surfaces team-size and participant-count violations before any
	// schedule state is built.
	if _, err := GenerateRotatingTeams(config.ParticipantIDs, 1, config.TeamSize); err != nil {
		return nil, err
	}

	playerCounts := make(map[ID]int, n)
	for _, id := range config.ParticipantIDs {
		playerCounts[id] = 0
	}

	courtsPerRound := min(len(config.Courts), n/(config.TeamSize*2))

	var matches []Match[ID]
	totalRounds := 0

	for round := 1; round <= n-1; round++ {
		if allAtCap(playerCounts, config.MaxMatchesPerPlayer) {
			break
		}

		teams, err := GenerateRotatingTeams(config.ParticipantIDs, round, config.TeamSize)
		if err != nil {
			return nil, err
		}

		// Adjacent teams form the round's potential matches.
		potentials := make([]TeamMatchup[ID], 0, len(teams)/2)
		for i := 0; i+1 < len(teams); i += 2 {
			m := TeamMatchup[ID]{Team1: teams[i], Team2: teams[i+1]}
			if teamUnderCap(m.Team1, playerCounts, config.MaxMatchesPerPlayer) &&
				teamUnderCap(m.Team2, playerCounts, config.MaxMatchesPerPlayer) {
				potentials = append(potentials, m)
			}
		}

		slices.SortStableFunc(potentials, func(a, b TeamMatchup[ID]) int {
			return matchupLoad(a, playerCounts) - matchupLoad(b, playerCounts)
		})

		booked := make(map[ID]bool, n)
		placed := 0
		for _, m := range potentials {
			if placed >= courtsPerRound {
				break
			}
			if anyBooked(m.Team1, booked) || anyBooked(m.Team2, booked) {
				continue
			}
			matches = append(matches, Match[ID]{
				ID:          uuid.NewString(),
				RoundNumber: round,
				CourtID:     config.Courts[placed].ID,
				Team1:       m.Team1.PlayerIDs,
				Team2:       m.Team2.PlayerIDs,
				Status:      MatchScheduled,
			})
			for _, id := range m.Team1.PlayerIDs {
				booked[id] = true
				playerCounts[id]++
			}
			for _, id := range m.Team2.PlayerIDs {
				booked[id] = true
				playerCounts[id]++
			}
			placed++
		}

		if placed > 0 {
			totalRounds = round
		}
	}

	return &GeneratedSchedule[ID]{
		TotalRounds:       totalRounds,
		Matches:           matches,
		PlayerMatchCounts: playerCounts,
	}, nil
}

func matchupKey[ID comparable](m TeamMatchup[ID]) string {
	a, b := m.Team1.TeamID, m.Team2.TeamID
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func matchupLoad[ID comparable](m TeamMatchup[ID], counts map[ID]int) int {
	total := 0
	for _, id := range m.Team1.PlayerIDs {
		total += counts[id]
	}
	for _, id := range m.Team2.PlayerIDs {
		total += counts[id]
	}
	return total
}

func teamUnderCap[ID comparable](team Team[ID], counts map[ID]int, maxMatches int) bool {
	for _, id := range team.PlayerIDs {
		if counts[id] >= maxMatches {
			return false
		}
	}
	return true
}

func anyBooked[ID comparable](team Team[ID], booked map[ID]bool) bool {
	for _, id := range team.PlayerIDs {
		if booked[id] {
			return true
		}
	}
	return false
}

func allAtCap[ID comparable](counts map[ID]int, maxMatches int) bool {
	for _, c := range counts {
		if c < maxMatches {
			return false
		}
	}
	return true
}

// ApplyMatchResult returns a new match list where the match with matchID is
// completed with the given scores. A zero completedAt means time.Now(). An
// unknown matchID is a deliberate no-op: the input comes back unchanged
// rather than as an error, leaving "nothing to update" to the caller.
func ApplyMatchResult[ID comparable](matches []Match[ID], matchID string, team1Score, team2Score int, completedAt time.Time) []Match[ID] {
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	updated := make([]Match[ID], len(matches))
	for i, m := range matches {
		if m.ID == matchID {
			m.Team1Score = utils.Ptr(team1Score)
			m.Team2Score = utils.Ptr(team2Score)
			m.Status = MatchCompleted
			m.CompletedAt = utils.Ptr(completedAt)
		}
		updated[i] = m
	}
	return updated
}

// courtLetters caps the letter phase; courts beyond it get numeric names.
const courtLetters = "ABCDEFGHIJKL"

// CreateDefaultCourts names the first twelve courts Court A..Court L, then
// switches to Court 13, Court 14, ... for larger venues.
func CreateDefaultCourts(count int) []Court {
	courts := make([]Court, 0, count)
	for i := 0; i < count; i++ {
		if i < len(courtLetters) {
			letter := string(courtLetters[i])
			courts = append(courts, Court{
				ID:   "court_" + strings.ToLower(letter),
				Name: "Court " + letter,
			})
		} else {
			courts = append(courts, Court{
				ID:   fmt.Sprintf("court_%d", i+1),
				Name: fmt.Sprintf("Court %d", i+1),
			})
		}
	}
	return courts
}

// MatchesForCourt filters matches scheduled on the given court.
func MatchesForCourt[ID comparable](matches []Match[ID], courtID string) []Match[ID] {
	var result []Match[ID]
	for _, m := range matches {
		if m.CourtID == courtID {
			result = append(result, m)
		}
	}
	return result
}
