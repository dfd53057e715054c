package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

const (
	jobSyncTeams        = "sync-teams"
	jobSyncAthletes     = "sync-athletes"
	jobSyncSeasonStats  = "sync-season-stats"
	jobUpdateTeamScores = "update-team-scores"
)

func (h *Handler) SyncTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncTeams")
	defer span.End()

	result, err := h.athleteSyncService.SyncTeams(ctx)
	h.metrics.ObserveJob(jobSyncTeams, err)
	if err != nil {
		h.logger.WarnContext(ctx, "team sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SyncAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncAthletes")
	defer span.End()

	result, err := h.athleteSyncService.SyncRoster(ctx)
	h.metrics.ObserveJob(jobSyncAthletes, err)
	if err != nil {
		h.logger.WarnContext(ctx, "roster sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SyncSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSeasonStats")
	defer span.End()

	var req seasonSyncRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.SyncSeasonStats(ctx, req.Season)
	h.metrics.ObserveJob(jobSyncSeasonStats, err)
	if err != nil {
		h.logger.WarnContext(ctx, "season stats sync failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// TestUpdateScores runs one scoring pass for a single game, ignoring whether
// the game window covers the day.
func (h *Handler) TestUpdateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TestUpdateScores")
	defer span.End()

	gameID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.runScoring(w, r.WithContext(ctx), gameID)
}

func (h *Handler) RunUpdateTeamScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUpdateTeamScoresJob")
	defer span.End()

	h.runScoring(w, r.WithContext(ctx), 0)
}

func (h *Handler) runScoring(w http.ResponseWriter, r *http.Request, gameID int64) {
	ctx := r.Context()

	var req scoringRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.RunDailyScoring(ctx, usecase.DailyScoringInput{
		Date:   req.day(),
		GameID: gameID,
	})
	h.metrics.ObserveJob(jobUpdateTeamScores, err)
	if err != nil {
		h.logger.WarnContext(ctx, "update team scores failed", "game_id", gameID, "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.metrics.ObserveScoring(result.Received, result.RecordsUpserted, result.Unmatched)

	writeSuccess(ctx, w, http.StatusOK, result)
}
