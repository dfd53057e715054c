package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-nft/internal/observability"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

type Handler struct {
	gameTeamService    *usecase.GameTeamService
	catalogService     *usecase.CatalogService
	leaderboardService *usecase.LeaderboardService
	ownershipService   *usecase.OwnershipService
	scoreService       *usecase.ScoreService
	athleteSyncService *usecase.AthleteSyncService
	metrics            *observability.Metrics
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	gameTeamService *usecase.GameTeamService,
	catalogService *usecase.CatalogService,
	leaderboardService *usecase.LeaderboardService,
	ownershipService *usecase.OwnershipService,
	scoreService *usecase.ScoreService,
	athleteSyncService *usecase.AthleteSyncService,
	metrics *observability.Metrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameTeamService:    gameTeamService,
		catalogService:     catalogService,
		leaderboardService: leaderboardService,
		ownershipService:   ownershipService,
		scoreService:       scoreService,
		athleteSyncService: athleteSyncService,
		metrics:            metrics,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody decodes a JSON body into out. An empty body leaves out untouched
// when allowEmpty is set.
func decodeBody(r *http.Request, out any, allowEmpty bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	annotatePathID(r.Context(), name, id)
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
