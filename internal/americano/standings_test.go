package americano

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStandingsSingleMatch(t *testing.T) {
	matches := []Match[string]{
		completedMatch("m1", 1, []string{"p1", "p2"}, []string{"p3", "p4"}, 21, 15),
	}

	standings := CalculateStandings(matches, players(4))
	require.Len(t, standings, 4)

	for _, id := range []string{"p1", "p2"} {
		s, rank := FindParticipantStanding(standings, id)
		require.NotNil(t, s)
		assert.LessOrEqual(t, rank, 2)
		assert.Equal(t, 1, s.MatchesPlayed)
		assert.Equal(t, 1, s.MatchesWon)
		assert.Equal(t, 0, s.MatchesLost)
		assert.Equal(t, 21, s.PointsScored)
		assert.Equal(t, 15, s.PointsConceded)
		assert.Equal(t, 6, s.PointsDifference)
	}
	for _, id := range []string{"p3", "p4"} {
		s, _ := FindParticipantStanding(standings, id)
		require.NotNil(t, s)
		assert.Equal(t, 0, s.MatchesWon)
		assert.Equal(t, 1, s.MatchesLost)
		assert.Equal(t, -6, s.PointsDifference)
	}
}

func TestCalculateStandingsSkipsUnfinishedMatches(t *testing.T) {
	matches := []Match[string]{
		scheduledMatch("m1", 1, []string{"p1"}, []string{"p2"}),
		completedMatch("m2", 1, []string{"p3"}, []string{"p4"}, 11, 7),
	}

	standings := CalculateStandings(matches, players(4))
	s, _ := FindParticipantStanding(standings, "p1")
	require.NotNil(t, s)
	assert.Equal(t, 0, s.MatchesPlayed, "scheduled matches must not count")
}

func TestCalculateStandingsEqualScoreGoesToTeam2(t *testing.T) {
	// An equal score is credited to team 2; there is no draw outcome.
	matches := []Match[string]{
		completedMatch("m1", 1, []string{"p1"}, []string{"p2"}, 16, 16),
	}

	standings := CalculateStandings(matches, []string{"p1", "p2"})
	s1, _ := FindParticipantStanding(standings, "p1")
	s2, _ := FindParticipantStanding(standings, "p2")
	assert.Equal(t, 0, s1.MatchesWon)
	assert.Equal(t, 1, s1.MatchesLost)
	assert.Equal(t, 1, s2.MatchesWon)
}

func TestCalculateStandingsIdempotent(t *testing.T) {
	matches := []Match[string]{
		completedMatch("m1", 1, []string{"p1", "p2"}, []string{"p3", "p4"}, 21, 15),
		completedMatch("m2", 2, []string{"p1", "p3"}, []string{"p2", "p4"}, 18, 21),
	}

	first := CalculateStandings(matches, players(4))
	second := CalculateStandings(matches, players(4))
	assert.Equal(t, first, second)
}

func TestSortStandings(t *testing.T) {
	testCases := []struct {
		name     string
		input    []Standing[string]
		expected []string
	}{
		{
			name: "by points difference",
			input: []Standing[string]{
				{ParticipantID: "c", PointsDifference: -12},
				{ParticipantID: "a", PointsDifference: 12},
				{ParticipantID: "b", PointsDifference: -2},
			},
			expected: []string{"a", "b", "c"},
		},
		{
			name: "points scored breaks difference tie",
			input: []Standing[string]{
				{ParticipantID: "b", PointsDifference: 0, PointsScored: 35},
				{ParticipantID: "a", PointsDifference: 0, PointsScored: 40},
			},
			expected: []string{"a", "b"},
		},
		{
			name: "matches won breaks remaining tie",
			input: []Standing[string]{
				{ParticipantID: "b", PointsDifference: 0, PointsScored: 40, MatchesWon: 1},
				{ParticipantID: "a", PointsDifference: 0, PointsScored: 40, MatchesWon: 2},
			},
			expected: []string{"a", "b"},
		},
		{
			name: "full tie keeps input order",
			input: []Standing[string]{
				{ParticipantID: "x", PointsDifference: 3, PointsScored: 20, MatchesWon: 1},
				{ParticipantID: "y", PointsDifference: 3, PointsScored: 20, MatchesWon: 1},
			},
			expected: []string{"x", "y"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sorted := SortStandings(tc.input)
			actual := make([]string, len(sorted))
			for i, s := range sorted {
				actual[i] = s.ParticipantID
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestSortStandingsDoesNotMutateInput(t *testing.T) {
	input := []Standing[string]{
		{ParticipantID: "b", PointsDifference: -1},
		{ParticipantID: "a", PointsDifference: 5},
	}

	_ = SortStandings(input)
	assert.Equal(t, "b", input[0].ParticipantID, "input order must survive sorting")
}

func TestStandingsHelpers(t *testing.T) {
	standings := []Standing[string]{
		{ParticipantID: "a", PointsDifference: 10},
		{ParticipantID: "b", PointsDifference: 4},
		{ParticipantID: "c", PointsDifference: -14},
	}

	leader := Leader(standings)
	require.NotNil(t, leader)
	assert.Equal(t, "a", leader.ParticipantID)
	assert.Nil(t, Leader[string](nil))

	assert.Len(t, TopStandings(standings, 2), 2)
	assert.Len(t, TopStandings(standings, 10), 3)
	assert.Empty(t, TopStandings(standings, 0))

	s, rank := FindParticipantStanding(standings, "b")
	require.NotNil(t, s)
	assert.Equal(t, 2, rank)

	missing, rank := FindParticipantStanding(standings, "ghost")
	assert.Nil(t, missing)
	assert.Zero(t, rank)

	zeroed := InitializeStandings(players(3))
	require.Len(t, zeroed, 3)
	for _, s := range zeroed {
		assert.Zero(t, s.MatchesPlayed)
		assert.Zero(t, s.PointsDifference)
	}
}

func TestScheduleThenScoreEndToEnd(t *testing.T) {
	config := SchedulingConfig[string]{
		ParticipantIDs:      players(8),
		Courts:              CreateDefaultCourts(2),
		MaxMatchesPerPlayer: 7,
		TeamSize:            2,
	}

	schedule, err := GenerateSchedule(config, ModeFixedTeams)
	require.NoError(t, err)
	require.NotEmpty(t, schedule.Matches)

	first := schedule.Matches[0]
	updated := ApplyMatchResult(schedule.Matches, first.ID, 21, 15, time.Now())

	standings := CalculateStandings(updated, config.ParticipantIDs)
	require.Len(t, standings, 8)

	winner := Leader(standings)
	require.NotNil(t, winner)
	assert.Contains(t, first.Team1, winner.ParticipantID)
	assert.Equal(t, 6, winner.PointsDifference)
	assert.Equal(t, 1, winner.MatchesWon)
}
