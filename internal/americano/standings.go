package americano

import "slices"

// Standing is a participant's aggregated record, recomputed on demand from
// the match list. PointsDifference is always PointsScored - PointsConceded,
// and MatchesWon + MatchesLost == MatchesPlayed.
type Standing[ID comparable] struct {
	ParticipantID    ID  `json:"participant_id"`
	MatchesPlayed    int `json:"matches_played"`
	MatchesWon       int `json:"matches_won"`
	MatchesLost      int `json:"matches_lost"`
	PointsScored     int `json:"points_scored"`
	PointsConceded   int `json:"points_conceded"`
	PointsDifference int `json:"points_difference"`
}

// InitializeStandings returns one zeroed standing per participant, in input
// order.
func InitializeStandings[ID comparable](participantIDs []ID) []Standing[ID] {
	standings := make([]Standing[ID], len(participantIDs))
	for i, id := range participantIDs {
		standings[i] = Standing[ID]{ParticipantID: id}
	}
	return standings
}

// CalculateStandings aggregates every completed match with both scores set
// into per-participant records and returns them ranked. It is stateless and
// can be rerun over the same match list at any time.
//
// A match counts as a team-1 win only on a strictly greater score; an equal
// score is credited to team 2. There is no draw outcome.
func CalculateStandings[ID comparable](matches []Match[ID], participantIDs []ID) []Standing[ID] {
	standings := InitializeStandings(participantIDs)

	index := make(map[ID]*Standing[ID], len(standings))
	for i := range standings {
		index[standings[i].ParticipantID] = &standings[i]
	}

	for _, m := range matches {
		if m.Status != MatchCompleted || m.Team1Score == nil || m.Team2Score == nil {
			continue
		}
		team1Won := *m.Team1Score > *m.Team2Score
		recordSide(index, m.Team1, *m.Team1Score, *m.Team2Score, team1Won)
		recordSide(index, m.Team2, *m.Team2Score, *m.Team1Score, !team1Won)
	}

	return SortStandings(standings)
}

func recordSide[ID comparable](index map[ID]*Standing[ID], side []ID, scored, conceded int, won bool) {
	for _, id := range side {
		s, ok := index[id]
		if !ok {
			continue
		}
		s.MatchesPlayed++
		s.PointsScored += scored
		s.PointsConceded += conceded
		s.PointsDifference = s.PointsScored - s.PointsConceded
		if won {
			s.MatchesWon++
		} else {
			s.MatchesLost++
		}
	}
}

// SortStandings ranks by descending points difference, then points scored,
// then matches won. The sort is stable, so ties beyond that keep their input
// order. The input slice is left untouched.
func SortStandings[ID comparable](standings []Standing[ID]) []Standing[ID] {
	sorted := make([]Standing[ID], len(standings))
	copy(sorted, standings)
	slices.SortStableFunc(sorted, func(a, b Standing[ID]) int {
		if a.PointsDifference != b.PointsDifference {
			return b.PointsDifference - a.PointsDifference
		}
		if a.PointsScored != b.PointsScored {
			return b.PointsScored - a.PointsScored
		}
		return b.MatchesWon - a.MatchesWon
	})
	return sorted
}

// Leader returns the first standing, or nil for an empty list.
func Leader[ID comparable](standings []Standing[ID]) *Standing[ID] {
	if len(standings) == 0 {
		return nil
	}
	return &standings[0]
}

// TopStandings returns the first n standings, or all of them when n exceeds
// the length.
func TopStandings[ID comparable](standings []Standing[ID], n int) []Standing[ID] {
	if n < 0 {
		n = 0
	}
	if n > len(standings) {
		n = len(standings)
	}
	return standings[:n]
}

// FindParticipantStanding returns the participant's standing and 1-indexed
// position, or (nil, 0) when absent.
func FindParticipantStanding[ID comparable](standings []Standing[ID], participantID ID) (*Standing[ID], int) {
	for i := range standings {
		if standings[i].ParticipantID == participantID {
			return &standings[i], i + 1
		}
	}
	return nil, 0
}
