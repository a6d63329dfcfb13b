package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/americano/internal/americano"
)

type TournamentStatus string

const (
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is the persisted tournament header. Matches, courts and
// participants live in their own tables.
type Tournament struct {
	ID                  string           `db:"id"`
	Name                string           `db:"name"`
	Mode                string           `db:"mode"`
	TeamSize            int              `db:"team_size"`
	MaxMatchesPerPlayer int              `db:"max_matches_per_player"`
	TotalRounds         int              `db:"total_rounds"`
	Status              TournamentStatus `db:"status"`
	CreatedAt           time.Time        `db:"created_at"`
}

// matchRow flattens americano.Match[string] for sqlx; the player lists are
// stored as JSON arrays so the schema stays agnostic of team size.
type matchRow struct {
	ID           string     `db:"id"`
	TournamentID string     `db:"tournament_id"`
	Position     int        `db:"position"`
	RoundNumber  int        `db:"round_number"`
	CourtID      string     `db:"court_id"`
	Team1Players string     `db:"team1_players"`
	Team2Players string     `db:"team2_players"`
	Status       string     `db:"status"`
	Team1Score   *int       `db:"team1_score"`
	Team2Score   *int       `db:"team2_score"`
	CompletedAt  *time.Time `db:"completed_at"`
}

type participantRow struct {
	TournamentID string `db:"tournament_id"`
	PlayerID     string `db:"player_id"`
	Seed         int    `db:"seed"`
}

type courtRow struct {
	TournamentID string `db:"tournament_id"`
	ID           string `db:"id"`
	Name         string `db:"name"`
	Position     int    `db:"position"`
}

// StoredMatch is a match together with the tournament it belongs to.
type StoredMatch struct {
	TournamentID string
	Match        americano.Match[string]
}

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, mode, team_size, max_matches_per_player, total_rounds, status)
        VALUES (:id, :name, :mode, :team_size, :max_matches_per_player, :total_rounds, :status)`, tournament)
	return err
}

func (s *TournamentStore) CreateParticipants(ctx context.Context, tx *sqlx.Tx, tournamentID string, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}
	rows := make([]participantRow, len(playerIDs))
	for i, id := range playerIDs {
		rows[i] = participantRow{TournamentID: tournamentID, PlayerID: id, Seed: i + 1}
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO participants (tournament_id, player_id, seed)
            VALUES (:tournament_id, :player_id, :seed)`, rows)
	return err
}

func (s *TournamentStore) CreateCourts(ctx context.Context, tx *sqlx.Tx, tournamentID string, courts []americano.Court) error {
	if len(courts) == 0 {
		return nil
	}
	rows := make([]courtRow, len(courts))
	for i, c := range courts {
		rows[i] = courtRow{TournamentID: tournamentID, ID: c.ID, Name: c.Name, Position: i + 1}
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO courts (tournament_id, id, name, position)
            VALUES (:tournament_id, :id, :name, :position)`, rows)
	return err
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, tournamentID string, matches []americano.Match[string]) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make([]matchRow, len(matches))
	for i, m := range matches {
		row, err := toMatchRow(tournamentID, i+1, m)
		if err != nil {
			return err
		}
		rows[i] = row
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, position, round_number, court_id, team1_players, team2_players, status, team1_score, team2_score, completed_at)
		VALUES (:id, :tournament_id, :position, :round_number, :court_id, :team1_players, :team2_players, :status, :team1_score, :team2_score, :completed_at)`, rows)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*Tournament, error) {
	var tournament Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC")
	return tournaments, err
}

func (s *TournamentStore) GetParticipants(ctx context.Context, tournamentID string) ([]string, error) {
	var playerIDs []string
	err := s.db.SelectContext(ctx, &playerIDs, "SELECT player_id FROM participants WHERE tournament_id = ? ORDER BY seed ASC", tournamentID)
	return playerIDs, err
}

func (s *TournamentStore) GetCourts(ctx context.Context, tournamentID string) ([]americano.Court, error) {
	var rows []courtRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM courts WHERE tournament_id = ? ORDER BY position ASC", tournamentID); err != nil {
		return nil, err
	}
	courts := make([]americano.Court, len(rows))
	for i, r := range rows {
		courts[i] = americano.Court{ID: r.ID, Name: r.Name}
	}
	return courts, nil
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID string) ([]americano.Match[string], error) {
	var rows []matchRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY position ASC", tournamentID)
	if err != nil {
		return nil, err
	}
	return fromMatchRows(rows)
}

func (s *TournamentStore) GetMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]americano.Match[string], error) {
	var rows []matchRow
	err := tx.SelectContext(ctx, &rows, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY position ASC", tournamentID)
	if err != nil {
		return nil, err
	}
	return fromMatchRows(rows)
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, matchID string) (*StoredMatch, error) {
	var row matchRow
	if err := tx.GetContext(ctx, &row, "SELECT * FROM matches WHERE id = ?", matchID); err != nil {
		return nil, err
	}
	match, err := fromMatchRow(row)
	if err != nil {
		return nil, err
	}
	return &StoredMatch{TournamentID: row.TournamentID, Match: match}, nil
}

func (s *TournamentStore) UpdateMatch(ctx context.Context, tx *sqlx.Tx, match americano.Match[string]) error {
	_, err := tx.ExecContext(ctx, `UPDATE matches SET status = ?, team1_score = ?, team2_score = ?, completed_at = ? WHERE id = ?`,
		string(match.Status), match.Team1Score, match.Team2Score, match.CompletedAt, match.ID)
	return err
}

func (s *TournamentStore) UpdateTournamentStatusTx(ctx context.Context, tx *sqlx.Tx, tournamentID string, status TournamentStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE id = ?", status, tournamentID)
	return err
}

func toMatchRow(tournamentID string, position int, m americano.Match[string]) (matchRow, error) {
	team1, err := json.Marshal(m.Team1)
	if err != nil {
		return matchRow{}, fmt.Errorf("failed to encode team 1: %w", err)
	}
	team2, err := json.Marshal(m.Team2)
	if err != nil {
		return matchRow{}, fmt.Errorf("failed to encode team 2: %w", err)
	}
	return matchRow{
		ID:           m.ID,
		TournamentID: tournamentID,
		Position:     position,
		RoundNumber:  m.RoundNumber,
		CourtID:      m.CourtID,
		Team1Players: string(team1),
		Team2Players: string(team2),
		Status:       string(m.Status),
		Team1Score:   m.Team1Score,
		Team2Score:   m.Team2Score,
		CompletedAt:  m.CompletedAt,
	}, nil
}

func fromMatchRow(row matchRow) (americano.Match[string], error) {
	var team1, team2 []string
	if err := json.Unmarshal([]byte(row.Team1Players), &team1); err != nil {
		return americano.Match[string]{}, fmt.Errorf("failed to decode team 1 for match %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Team2Players), &team2); err != nil {
		return americano.Match[string]{}, fmt.Errorf("failed to decode team 2 for match %s: %w", row.ID, err)
	}
	return americano.Match[string]{
		ID:          row.ID,
		RoundNumber: row.RoundNumber,
		CourtID:     row.CourtID,
		Team1:       team1,
		Team2:       team2,
		Status:      americano.MatchStatus(row.Status),
		Team1Score:  row.Team1Score,
		Team2Score:  row.Team2Score,
		CompletedAt: row.CompletedAt,
	}, nil
}

func fromMatchRows(rows []matchRow) ([]americano.Match[string], error) {
	matches := make([]americano.Match[string], len(rows))
	for i, row := range rows {
		match, err := fromMatchRow(row)
		if err != nil {
			return nil, err
		}
		matches[i] = match
	}
	return matches, nil
}
