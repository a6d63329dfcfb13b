package americano

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i+1)
	}
	return ids
}

func TestGenerateFixedTeams(t *testing.T) {
	testCases := []struct {
		name          string
		participants  []string
		teamSize      int
		expectedTeams int
		expectedError bool
	}{
		{
			name:          "8 players in pairs",
			participants:  players(8),
			teamSize:      2,
			expectedTeams: 4,
		},
		{
			name:          "9 players in triples",
			participants:  players(9),
			teamSize:      3,
			expectedTeams: 3,
		},
		{
			name:          "singles",
			participants:  players(4),
			teamSize:      1,
			expectedTeams: 4,
		},
		{
			name:          "not divisible",
			participants:  players(7),
			teamSize:      2,
			expectedError: true,
		},
		{
			name:          "zero team size",
			participants:  players(4),
			teamSize:      0,
			expectedError: true,
		},
		{
			name:          "no participants",
			participants:  nil,
			teamSize:      2,
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			teams, err := GenerateFixedTeams(tc.participants, tc.teamSize, nil)

			if tc.expectedError {
				var configErr *ConfigError
				assert.ErrorAs(t, err, &configErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, teams, tc.expectedTeams)

			seen := make(map[string]bool)
			for _, team := range teams {
				assert.Len(t, team.PlayerIDs, tc.teamSize)
				for _, id := range team.PlayerIDs {
					assert.False(t, seen[id], "player %s appears on two teams", id)
					seen[id] = true
				}
			}
			assert.Len(t, seen, len(tc.participants), "every participant should be assigned")
		})
	}
}

func TestGenerateFixedTeamsPredefined(t *testing.T) {
	ids := players(4)
	predefined := []Team[string]{
		{TeamID: "alpha", PlayerIDs: []string{"p1", "p3"}},
		{TeamID: "beta", PlayerIDs: []string{"p2", "p4"}},
	}

	teams, err := GenerateFixedTeams(ids, 2, predefined)
	require.NoError(t, err)
	assert.Equal(t, predefined, teams, "predefined teams should be returned unchanged")
}

func TestValidateTeamAssignments(t *testing.T) {
	ids := players(4)

	testCases := []struct {
		name  string
		teams []Team[string]
	}{
		{
			name: "wrong team size",
			teams: []Team[string]{
				{TeamID: "a", PlayerIDs: []string{"p1"}},
				{TeamID: "b", PlayerIDs: []string{"p2", "p3", "p4"}},
			},
		},
		{
			name: "duplicate assignment",
			teams: []Team[string]{
				{TeamID: "a", PlayerIDs: []string{"p1", "p2"}},
				{TeamID: "b", PlayerIDs: []string{"p2", "p3"}},
			},
		},
		{
			name: "unknown participant",
			teams: []Team[string]{
				{TeamID: "a", PlayerIDs: []string{"p1", "p2"}},
				{TeamID: "b", PlayerIDs: []string{"p3", "ghost"}},
			},
		},
		{
			name: "participant left out",
			teams: []Team[string]{
				{TeamID: "a", PlayerIDs: []string{"p1", "p2"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTeamAssignments(tc.teams, ids, 2)
			var configErr *ConfigError
			assert.ErrorAs(t, err, &configErr)
		})
	}

	t.Run("valid partition", func(t *testing.T) {
		teams := []Team[string]{
			{TeamID: "a", PlayerIDs: []string{"p1", "p4"}},
			{TeamID: "b", PlayerIDs: []string{"p2", "p3"}},
		}
		assert.NoError(t, ValidateTeamAssignments(teams, ids, 2))
	})
}

func TestGenerateRotatingTeams(t *testing.T) {
	ids := players(6)

	round1, err := GenerateRotatingTeams(ids, 1, 2)
	require.NoError(t, err)
	require.Len(t, round1, 3)
	assert.Equal(t, []string{"p1", "p2"}, round1[0].PlayerIDs, "round 1 keeps input order")
	assert.Equal(t, "round_1_team_1", round1[0].TeamID)

	round2, err := GenerateRotatingTeams(ids, 2, 2)
	require.NoError(t, err)
	assert.NotEqual(t, round1[0].PlayerIDs, round2[0].PlayerIDs, "partners must change between rounds")
	assert.Equal(t, []string{"p1", "p3"}, round2[0].PlayerIDs)

	// The cycle wraps after n-1 rounds.
	round6, err := GenerateRotatingTeams(ids, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, round1, flattenTeamIDs(round6, round1), "round n matches round 1 composition")
}

// flattenTeamIDs rebuilds round6 with round1's team IDs so compositions can
// be compared directly.
func flattenTeamIDs(teams, reference []Team[string]) []Team[string] {
	result := make([]Team[string], len(teams))
	for i, team := range teams {
		result[i] = Team[string]{TeamID: reference[i].TeamID, PlayerIDs: team.PlayerIDs}
	}
	return result
}

func TestGenerateRotatingTeamsErrors(t *testing.T) {
	testCases := []struct {
		name         string
		participants []string
		round        int
		teamSize     int
	}{
		{name: "round zero", participants: players(6), round: 0, teamSize: 2},
		{name: "too few participants", participants: players(3), round: 1, teamSize: 2},
		{name: "not divisible", participants: players(9), round: 1, teamSize: 2},
		{name: "zero team size", participants: players(6), round: 1, teamSize: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateRotatingTeams(tc.participants, tc.round, tc.teamSize)
			var configErr *ConfigError
			assert.ErrorAs(t, err, &configErr)
		})
	}
}

func TestGenerateRotatingPairs(t *testing.T) {
	ids := players(6)

	round1, err := GenerateRotatingPairs(ids, 1)
	require.NoError(t, err)
	round2, err := GenerateRotatingPairs(ids, 2)
	require.NoError(t, err)

	require.Len(t, round1, 3)
	assert.NotEqual(t, round1, round2, "consecutive rounds must pair differently")
	assert.Equal(t, Pair[string]{Player1: "p1", Player2: "p2"}, round1[0])
}

func TestTeamQueries(t *testing.T) {
	teams := []Team[string]{
		{TeamID: "a", PlayerIDs: []string{"p1", "p2"}},
		{TeamID: "b", PlayerIDs: []string{"p3", "p4"}},
		{TeamID: "c", PlayerIDs: []string{"p5", "p6"}},
	}

	found := FindTeamForPlayer(teams, "p4")
	require.NotNil(t, found)
	assert.Equal(t, "b", found.TeamID)
	assert.Nil(t, FindTeamForPlayer(teams, "ghost"))

	assert.True(t, AreTeammates(teams, "p1", "p2"))
	assert.True(t, AreTeammates(teams, "p3", "p3"), "a player is their own teammate")
	assert.False(t, AreTeammates(teams, "p1", "p3"))
	assert.False(t, AreTeammates(teams, "ghost", "p1"))

	matchups := AllTeamMatchups(teams)
	assert.Len(t, matchups, 3, "C(3,2) unique matchups")

	assert.Equal(t, 4, CalculateTeamCount(8, 2))
	assert.Equal(t, 3, CalculateTeamCount(10, 3))
	assert.Equal(t, 0, CalculateTeamCount(8, 0))
}
