package httpapi

import (
	"net/http"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.standingService.ListSeasons(ctx)
	if err != nil {
		h.fail(ctx, w, "list seasons failed", err)
		return
	}

	out := make([]seasonSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonSummaryDTO{
			SeasonID:   item.SeasonID,
			SeasonYear: item.SeasonYear,
			TeamCount:  item.TeamCount,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingService.GetBySeason(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "get season standings failed", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonTableToDTO(table))
}

func (h *Handler) RecalculateSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSeasonStandings")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.standingService.Recalculate(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "recalculate season standings failed", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RefreshSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshSeasonStandings")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.standingService.Refresh(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "refresh season standings failed", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RecalculateAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateAllStandings")
	defer span.End()

	result, err := h.standingService.RecalculateAll(ctx)
	if err != nil {
		h.fail(ctx, w, "recalculate all standings failed", err)
		return
	}
	if result.FailedCount > 0 {
		h.logger.WarnContext(ctx, "recalculate all standings finished with failures",
			"success_count", result.SuccessCount,
			"failed_count", result.FailedCount,
		)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetSeasonTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonTeamForm")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	form, err := h.reportService.SeasonTeamForm(ctx, seasonID, teamID, limit)
	if err != nil {
		h.fail(ctx, w, "get season team form failed", err, "season_id", seasonID, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamFormToDTO(form))
}
