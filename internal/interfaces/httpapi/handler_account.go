package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListAccountAssets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAccountAssets")
	defer span.End()

	wallet := strings.TrimSpace(r.PathValue("wallet"))
	contract := strings.TrimSpace(r.PathValue("contract"))

	items, err := h.ownershipService.ListAccountAssets(ctx, wallet, contract)
	if err != nil {
		h.logger.WarnContext(ctx, "list account assets failed", "wallet_addr", wallet, "contract_addr", contract, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListAthleteTokens(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAthleteTokens")
	defer span.End()

	wallet := strings.TrimSpace(r.PathValue("wallet"))
	contract := strings.TrimSpace(r.PathValue("contract"))

	view, err := h.ownershipService.ResolveOwnedTokens(ctx, wallet, contract)
	if err != nil {
		h.logger.WarnContext(ctx, "list athlete tokens failed", "wallet_addr", wallet, "contract_addr", contract, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}
