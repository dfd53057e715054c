package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameTeamService.GetGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	items, err := h.gameTeamService.ListGames(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameTeamService.CreateGame(ctx, usecase.CreateGameInput{
		Name:            req.Name,
		StartAt:         req.StartDatetime,
		DurationMinutes: req.Duration,
		Prize:           req.Prize,
		ImageURL:        strings.TrimSpace(req.Image),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(item))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	gameID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.leaderboardService.Leaderboard(ctx, gameID, page, pageSize)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListRegisteredTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegisteredTeams")
	defer span.End()

	gameID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	wallet := strings.TrimSpace(r.URL.Query().Get("wallet_addr"))

	items, err := h.gameTeamService.ListRegisteredTeams(ctx, gameID, wallet)
	if err != nil {
		h.logger.WarnContext(ctx, "list registered teams failed", "game_id", gameID, "wallet_addr", wallet, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameTeam")
	defer span.End()

	teamID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.gameTeamService.GetTeamDetail(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game team failed", "game_team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) RegisterGameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterGameTeam")
	defer span.End()

	var req registerGameTeamRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.gameTeamService.RegisterTeam(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "register game team failed",
			"game_id", input.GameID,
			"wallet_addr", input.WalletAddr,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, view)
}
