package americano

// Pure filters and predicates over a match list. The scheduler uses a few of
// these to know when a tournament is done; callers use them to render state.

// MatchesForRound returns the matches scheduled in the given round.
func MatchesForRound[ID comparable](matches []Match[ID], roundNumber int) []Match[ID] {
	var result []Match[ID]
	for _, m := range matches {
		if m.RoundNumber == roundNumber {
			result = append(result, m)
		}
	}
	return result
}

// IsRoundComplete reports whether the round has at least one match and all
// of its matches are completed.
func IsRoundComplete[ID comparable](matches []Match[ID], roundNumber int) bool {
	found := false
	for _, m := range matches {
		if m.RoundNumber != roundNumber {
			continue
		}
		found = true
		if m.Status != MatchCompleted {
			return false
		}
	}
	return found
}

// CurrentRound returns the first round that still has unfinished matches,
// the last round once everything is completed, or 1 when there are no
// matches at all.
func CurrentRound[ID comparable](matches []Match[ID]) int {
	total := TotalRounds(matches)
	if total == 0 {
		return 1
	}
	for round := 1; round <= total; round++ {
		roundMatches := MatchesForRound(matches, round)
		if len(roundMatches) == 0 {
			continue
		}
		for _, m := range roundMatches {
			if m.Status != MatchCompleted {
				return round
			}
		}
	}
	return total
}

// IsTournamentComplete reports whether every match is completed. An empty
// match list is not a finished tournament.
func IsTournamentComplete[ID comparable](matches []Match[ID]) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m.Status != MatchCompleted {
			return false
		}
	}
	return true
}

// TotalRounds returns the highest round number in use, 0 for no matches.
func TotalRounds[ID comparable](matches []Match[ID]) int {
	total := 0
	for _, m := range matches {
		if m.RoundNumber > total {
			total = m.RoundNumber
		}
	}
	return total
}

// MatchesByStatus filters matches with the given status.
func MatchesByStatus[ID comparable](matches []Match[ID], status MatchStatus) []Match[ID] {
	var result []Match[ID]
	for _, m := range matches {
		if m.Status == status {
			result = append(result, m)
		}
	}
	return result
}

// CountCompletedMatches returns how many matches are completed.
func CountCompletedMatches[ID comparable](matches []Match[ID]) int {
	count := 0
	for _, m := range matches {
		if m.Status == MatchCompleted {
			count++
		}
	}
	return count
}

// MatchByID returns the match with the given ID, or nil.
func MatchByID[ID comparable](matches []Match[ID], matchID string) *Match[ID] {
	for i := range matches {
		if matches[i].ID == matchID {
			return &matches[i]
		}
	}
	return nil
}

// MatchesForPlayer returns every match the player takes part in.
func MatchesForPlayer[ID comparable](matches []Match[ID], playerID ID) []Match[ID] {
	var result []Match[ID]
	for _, m := range matches {
		if containsID(m.Team1, playerID) || containsID(m.Team2, playerID) {
			result = append(result, m)
		}
	}
	return result
}

// ExtractParticipantIDs collects the unique participant IDs appearing in any
// match, in first-appearance order.
func ExtractParticipantIDs[ID comparable](matches []Match[ID]) []ID {
	seen := make(map[ID]bool)
	var result []ID
	for _, m := range matches {
		for _, id := range m.Team1 {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
		for _, id := range m.Team2 {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}
	return result
}

// IsValidParticipantCount reports whether count participants can play a
// tournament at the given team size: enough for two full teams, and evenly
// divisible into teams.
func IsValidParticipantCount(count, teamSize int) bool {
	if teamSize < 1 {
		return false
	}
	return count >= teamSize*2 && count%teamSize == 0
}

// MinimumCourts returns how many courts the participant count can fill
// simultaneously.
func MinimumCourts(count, teamSize int) int {
	if teamSize < 1 {
		return 0
	}
	return count / (teamSize * 2)
}

func containsID[ID comparable](ids []ID, target ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
