package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type matchRequest struct {
	SeasonID   int64  `json:"season_id" validate:"required,gt=0"`
	HomeTeamID int64  `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID int64  `json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	MatchDate  string `json:"match_date" validate:"required"`
	Status     string `json:"status" validate:"omitempty,max=20"`
	HomeGoals  *int   `json:"home_goals" validate:"omitempty,min=0"`
	AwayGoals  *int   `json:"away_goals" validate:"omitempty,min=0"`
	Venue      string `json:"venue" validate:"omitempty,max=100"`
	Referee    string `json:"referee" validate:"omitempty,max=100"`
}

func (h *Handler) decodeMatchRequest(r *http.Request) (usecase.MatchInput, error) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.decodeMatchRequest")
	defer span.End()

	var req matchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return usecase.MatchInput{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.MatchInput{}, err
	}

	matchDate, err := parseMatchDate(req.MatchDate)
	if err != nil {
		return usecase.MatchInput{}, err
	}

	return usecase.MatchInput{
		SeasonID:   req.SeasonID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		MatchDate:  matchDate,
		Status:     req.Status,
		HomeGoals:  req.HomeGoals,
		AwayGoals:  req.AwayGoals,
		Venue:      strings.TrimSpace(req.Venue),
		Referee:    strings.TrimSpace(req.Referee),
	}, nil
}

// parseMatchDate accepts RFC3339 timestamps and plain dates.
func parseMatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.DateOnly, raw); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("%w: match_date must be RFC3339 or YYYY-MM-DD, got %q", usecase.ErrInvalidInput, raw)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	items, err := h.matchService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list matches failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) ListScheduledMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScheduledMatches")
	defer span.End()

	items, err := h.matchService.ListScheduled(ctx)
	if err != nil {
		h.fail(ctx, w, "list scheduled matches failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.fail(ctx, w, "get match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	input, err := h.decodeMatchRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.Create(ctx, input)
	if err != nil {
		h.fail(ctx, w, "create match failed", err, "season_id", input.SeasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchMutationToDTO(result))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := h.decodeMatchRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.Update(ctx, matchID, input)
	if err != nil {
		h.fail(ctx, w, "update match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationToDTO(result))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	recomputed, err := h.matchService.Delete(ctx, matchID)
	if err != nil {
		h.fail(ctx, w, "delete match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteMatchDTO{
		MatchID:    matchID,
		Recomputed: recomputedOrEmpty(recomputed),
	})
}
