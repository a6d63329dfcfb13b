package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/americano/internal/americano"
	"github.com/courtside/americano/internal/store"
)

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store}
}

// CreateTournamentInput carries everything needed to start a tournament.
// Courts wins over CourtCount when both are set; with neither, one court per
// simultaneously playable match is created.
type CreateTournamentInput struct {
	Name                string
	Mode                americano.Mode
	PlayerIDs           []string
	TeamSize            int
	MaxMatchesPerPlayer int
	CourtCount          int
	Courts              []americano.Court
	PredefinedTeams     []americano.Team[string]
}

// TournamentData is the full read model for one tournament view.
type TournamentData struct {
	Tournament   *store.Tournament
	Courts       []americano.Court
	Matches      []americano.Match[string]
	CurrentRound int
	Complete     bool
}

// CreateTournament generates the schedule and persists the tournament,
// participants, courts and matches in one transaction. Schedule generation
// is one-shot: rerunning it for the same players would produce a different
// random team split, so the schedule is written exactly once here.
func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (string, error) {
	courts := input.Courts
	if len(courts) == 0 {
		count := input.CourtCount
		if count == 0 && input.TeamSize > 0 {
			count = americano.MinimumCourts(len(input.PlayerIDs), input.TeamSize)
		}
		courts = americano.CreateDefaultCourts(count)
	}

	config := americano.SchedulingConfig[string]{
		ParticipantIDs:      input.PlayerIDs,
		Courts:              courts,
		MaxMatchesPerPlayer: input.MaxMatchesPerPlayer,
		TeamSize:            input.TeamSize,
		PredefinedTeams:     input.PredefinedTeams,
	}

	schedule, err := americano.GenerateSchedule(config, input.Mode)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	tournamentID := uuid.NewString()
	tournament := store.Tournament{
		ID:                  tournamentID,
		Name:                input.Name,
		Mode:                string(input.Mode),
		TeamSize:            input.TeamSize,
		MaxMatchesPerPlayer: input.MaxMatchesPerPlayer,
		TotalRounds:         schedule.TotalRounds,
		Status:              store.TournamentActive,
	}

	if err := s.store.CreateTournament(ctx, tx, &tournament); err != nil {
		return "", fmt.Errorf("failed to create tournament: %w", err)
	}
	if err := s.store.CreateParticipants(ctx, tx, tournamentID, input.PlayerIDs); err != nil {
		return "", fmt.Errorf("failed to create participants: %w", err)
	}
	if err := s.store.CreateCourts(ctx, tx, tournamentID, courts); err != nil {
		return "", fmt.Errorf("failed to create courts: %w", err)
	}
	if err := s.store.CreateMatches(ctx, tx, tournamentID, schedule.Matches); err != nil {
		return "", fmt.Errorf("failed to create matches: %w", err)
	}

	return tournamentID, tx.Commit()
}

// SubmitScore records a final score for one match. The read-modify-write
// runs in a single transaction, which is what serializes concurrent score
// submissions for the same tournament.
func (s *TournamentService) SubmitScore(ctx context.Context, matchID string, team1Score, team2Score int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stored, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}

	matches, err := s.store.GetMatchesTx(ctx, tx, stored.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to get matches: %w", err)
	}

	updated := americano.ApplyMatchResult(matches, matchID, team1Score, team2Score, time.Time{})

	completed := americano.MatchByID(updated, matchID)
	if completed == nil {
		return fmt.Errorf("match %s not found in its own tournament", matchID)
	}
	if err := s.store.UpdateMatch(ctx, tx, *completed); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	if americano.IsTournamentComplete(updated) {
		if err := s.store.UpdateTournamentStatusTx(ctx, tx, stored.TournamentID, store.TournamentCompleted); err != nil {
			return fmt.Errorf("failed to update tournament status: %w", err)
		}
	}

	return tx.Commit()
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	courts, err := s.store.GetCourts(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.GetMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TournamentData{
		Tournament:   tournament,
		Courts:       courts,
		Matches:      matches,
		CurrentRound: americano.CurrentRound(matches),
		Complete:     americano.IsTournamentComplete(matches),
	}, nil
}

// GetStandings recomputes the ranking from the stored match list. Players
// without a completed match keep a zeroed standing.
func (s *TournamentService) GetStandings(ctx context.Context, tournamentID string) ([]americano.Standing[string], error) {
	playerIDs, err := s.store.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	return americano.CalculateStandings(matches, playerIDs), nil
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]store.Tournament, error) {
	return s.store.ListTournaments(ctx)
}
