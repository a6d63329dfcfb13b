package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/americano/internal/americano"
	"github.com/courtside/americano/internal/httputil"
	"github.com/courtside/americano/internal/service"
	"github.com/courtside/americano/internal/store"
)

type createTournamentRequest struct {
	Name                string                   `json:"name"`
	Mode                string                   `json:"mode"`
	PlayerIDs           []string                 `json:"player_ids"`
	TeamSize            int                      `json:"team_size"`
	MaxMatchesPerPlayer int                      `json:"max_matches_per_player"`
	CourtCount          int                      `json:"court_count"`
	Courts              []americano.Court        `json:"courts"`
	PredefinedTeams     []americano.Team[string] `json:"predefined_teams"`
}

type submitScoreRequest struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

func newRouter(database *sqlx.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	tournaments := service.NewTournamentService(database, store.NewTournamentStore(database))

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		mode := americano.Mode(req.Mode)
		if mode == "" {
			mode = americano.ModeFixedTeams
		}

		id, err := tournaments.CreateTournament(r.Context(), service.CreateTournamentInput{
			Name:                req.Name,
			Mode:                mode,
			PlayerIDs:           req.PlayerIDs,
			TeamSize:            req.TeamSize,
			MaxMatchesPerPlayer: req.MaxMatchesPerPlayer,
			CourtCount:          req.CourtCount,
			Courts:              req.Courts,
			PredefinedTeams:     req.PredefinedTeams,
		})
		if err != nil {
			var configErr *americano.ConfigError
			if errors.As(err, &configErr) {
				httputil.BadRequest(w, configErr.Error(), err)
				return
			}
			httputil.InternalServerError(w, "Failed to create tournament", err)
			return
		}

		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
	})

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		list, err := tournaments.ListTournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list tournaments", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	})

	r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		data, err := tournaments.GetTournamentData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get tournament", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"tournament":    data.Tournament,
			"courts":        data.Courts,
			"matches":       data.Matches,
			"current_round": data.CurrentRound,
			"complete":      data.Complete,
		})
	})

	r.Get("/tournaments/{id}/matches", func(w http.ResponseWriter, r *http.Request) {
		data, err := tournaments.GetTournamentData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get tournament", err)
			return
		}

		matches := data.Matches
		if roundStr := r.URL.Query().Get("round"); roundStr != "" {
			round, err := strconv.Atoi(roundStr)
			if err != nil {
				httputil.BadRequest(w, "Invalid round number", err)
				return
			}
			matches = americano.MatchesForRound(matches, round)
		}
		httputil.WriteJSON(w, http.StatusOK, matches)
	})

	r.Get("/tournaments/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
		standings, err := tournaments.GetStandings(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get standings", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, standings)
	})

	r.Post("/matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
		var req submitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		if err := tournaments.SubmitScore(r.Context(), chi.URLParam(r, "id"), req.Team1Score, req.Team2Score); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Match not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to submit score", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
