package americano

import (
	"fmt"
	"math/rand"
)

// GenerateFixedTeams partitions participants into stable teams of teamSize.
// When predefined is non-empty it is validated and returned unchanged, so an
// organizer can pin partnerships manually. Otherwise the participants are
// shuffled and sliced into contiguous groups named team_1..team_k.
func GenerateFixedTeams[ID comparable](participantIDs []ID, teamSize int, predefined []Team[ID]) ([]Team[ID], error) {
	if teamSize < 1 {
		return nil, configErrorf("team size must be at least 1, got %d", teamSize)
	}
	if len(participantIDs) == 0 {
		return nil, configErrorf("at least one participant is required")
	}
	if len(participantIDs)%teamSize != 0 {
		return nil, configErrorf("participant count %d is not evenly divisible by team size %d", len(participantIDs), teamSize)
	}

	if len(predefined) > 0 {
		if err := ValidateTeamAssignments(predefined, participantIDs, teamSize); err != nil {
			return nil, err
		}
		return predefined, nil
	}

	shuffled := make([]ID, len(participantIDs))
	copy(shuffled, participantIDs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	teams := make([]Team[ID], 0, len(shuffled)/teamSize)
	for i := 0; i < len(shuffled); i += teamSize {
		teams = append(teams, Team[ID]{
			TeamID:    fmt.Sprintf("team_%d", len(teams)+1),
			PlayerIDs: shuffled[i : i+teamSize],
		})
	}
	return teams, nil
}

// ValidateTeamAssignments checks that teams form an exact partition of
// participantIDs into groups of teamSize: no short or oversized teams, no
// player on two teams, no unknown players, nobody left unassigned.
func ValidateTeamAssignments[ID comparable](teams []Team[ID], participantIDs []ID, teamSize int) error {
	known := make(map[ID]bool, len(participantIDs))
	for _, id := range participantIDs {
		known[id] = true
	}

	assigned := make(map[ID]string, len(participantIDs))
	for _, team := range teams {
		if len(team.PlayerIDs) != teamSize {
			return configErrorf("team %s has %d players, expected %d", team.TeamID, len(team.PlayerIDs), teamSize)
		}
		for _, id := range team.PlayerIDs {
			if !known[id] {
				return configErrorf("team %s contains unknown participant %v", team.TeamID, id)
			}
			if prev, ok := assigned[id]; ok {
				return configErrorf("participant %v is assigned to both %s and %s", id, prev, team.TeamID)
			}
			assigned[id] = team.TeamID
		}
	}

	for _, id := range participantIDs {
		if _, ok := assigned[id]; !ok {
			return configErrorf("participant %v is not assigned to any team", id)
		}
	}
	return nil
}

// GenerateRotatingTeams builds the team composition for one round of
// rotating play using the round-robin circle method: the first participant
// stays fixed while the rest rotate by roundNumber-1 positions, then the
// resulting order is sliced into teams of teamSize. Over a full n-1 round
// cycle every pair of participants partners up before any pairing repeats.
func GenerateRotatingTeams[ID comparable](participantIDs []ID, roundNumber, teamSize int) ([]Team[ID], error) {
	if teamSize < 1 {
		return nil, configErrorf("team size must be at least 1, got %d", teamSize)
	}
	if roundNumber < 1 {
		return nil, configErrorf("round number must be at least 1, got %d", roundNumber)
	}
	n := len(participantIDs)
	if n < teamSize*2 {
		return nil, configErrorf("rotation needs at least %d participants for team size %d, got %d", teamSize*2, teamSize, n)
	}
	if n%teamSize != 0 {
		return nil, configErrorf("participant count %d is not evenly divisible by team size %d", n, teamSize)
	}

	rest := participantIDs[1:]
	shift := (roundNumber - 1) % (n - 1)

	order := make([]ID, 0, n)
	order = append(order, participantIDs[0])
	order = append(order, rest[shift:]...)
	order = append(order, rest[:shift]...)

	teams := make([]Team[ID], 0, n/teamSize)
	for i := 0; i < n; i += teamSize {
		teams = append(teams, Team[ID]{
			TeamID:    fmt.Sprintf("round_%d_team_%d", roundNumber, len(teams)+1),
			PlayerIDs: order[i : i+teamSize],
		})
	}
	return teams, nil
}

// GenerateRotatingPairs is the two-player specialization of
// GenerateRotatingTeams.
func GenerateRotatingPairs[ID comparable](participantIDs []ID, roundNumber int) ([]Pair[ID], error) {
	teams, err := GenerateRotatingTeams(participantIDs, roundNumber, 2)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair[ID], len(teams))
	for i, team := range teams {
		pairs[i] = Pair[ID]{Player1: team.PlayerIDs[0], Player2: team.PlayerIDs[1]}
	}
	return pairs, nil
}

// FindTeamForPlayer returns the team containing playerID, or nil.
func FindTeamForPlayer[ID comparable](teams []Team[ID], playerID ID) *Team[ID] {
	for i := range teams {
		for _, id := range teams[i].PlayerIDs {
			if id == playerID {
				return &teams[i]
			}
		}
	}
	return nil
}

// AreTeammates reports whether both players are on the same team. A player
// is trivially their own teammate.
func AreTeammates[ID comparable](teams []Team[ID], a, b ID) bool {
	team := FindTeamForPlayer(teams, a)
	if team == nil {
		return false
	}
	for _, id := range team.PlayerIDs {
		if id == b {
			return true
		}
	}
	return false
}

// AllTeamMatchups enumerates every unordered pair of distinct teams once,
// C(k,2) matchups in total.
func AllTeamMatchups[ID comparable](teams []Team[ID]) []TeamMatchup[ID] {
	matchups := make([]TeamMatchup[ID], 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			matchups = append(matchups, TeamMatchup[ID]{Team1: teams[i], Team2: teams[j]})
		}
	}
	return matchups
}

// CalculateTeamCount returns how many full teams of teamSize the given
// participant count yields.
func CalculateTeamCount(participantCount, teamSize int) int {
	if teamSize < 1 {
		return 0
	}
	return participantCount / teamSize
}
