package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

type TeamAthleteView struct {
	AthleteID int64  `json:"athlete_id"`
	APIID     int64  `json:"api_id"`
	AssetID   int64  `json:"asset_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	ImageURL  string `json:"image_url"`
	ScoreView
}

type TeamDetailView struct {
	ID           int64             `json:"id"`
	GameID       int64             `json:"game_id"`
	Name         string            `json:"name"`
	WalletAddr   string            `json:"wallet_addr"`
	FantasyScore float64           `json:"fantasy_score"`
	IsClaimed    bool              `json:"is_claimed"`
	Season       string            `json:"season"`
	Athletes     []TeamAthleteView `json:"athletes"`
}

type CreateGameInput struct {
	Name            string
	StartAt         time.Time
	DurationMinutes int
	Prize           float64
	ImageURL        string
}

type TeamTokenInput struct {
	TokenID   string
	AthleteID int64
}

type RegisterTeamInput struct {
	GameID       int64
	Name         string
	WalletAddr   string
	ContractAddr string
	Tokens       []TeamTokenInput
}

// GameTeamService owns games, team registration and team read models.
type GameTeamService struct {
	gameRepo     game.Repository
	gameTeamRepo gameteam.Repository
	athleteRepo  athlete.Repository
	scoreRepo    score.Repository
	accountRepo  account.Repository
	chain        ChainQuerier
	scoreCfg     ScoreConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameTeamService(
	gameRepo game.Repository,
	gameTeamRepo gameteam.Repository,
	athleteRepo athlete.Repository,
	scoreRepo score.Repository,
	accountRepo account.Repository,
	chain ChainQuerier,
	scoreCfg ScoreConfig,
	logger *logging.Logger,
) *GameTeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameTeamService{
		gameRepo:     gameRepo,
		gameTeamRepo: gameTeamRepo,
		athleteRepo:  athleteRepo,
		scoreRepo:    scoreRepo,
		accountRepo:  accountRepo,
		chain:        chain,
		scoreCfg:     scoreCfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GameTeamService) CreateGame(ctx context.Context, input CreateGameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.CreateGame")
	defer span.End()

	item := game.Game{
		Name:            input.Name,
		StartAt:         input.StartAt,
		DurationMinutes: input.DurationMinutes,
		Prize:           input.Prize,
		ImageURL:        strings.TrimSpace(input.ImageURL),
	}.Normalize()
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.gameRepo.Create(ctx, item)
	if err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

func (s *GameTeamService) GetGame(ctx context.Context, gameID int64) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.GetGame")
	defer span.End()

	return s.requireGame(ctx, gameID)
}

func (s *GameTeamService) ListGames(ctx context.Context) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.ListGames")
	defer span.End()

	items, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return items, nil
}

func (s *GameTeamService) requireGame(ctx context.Context, gameID int64) (game.Game, error) {
	if gameID <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}
	return item, nil
}

// GetTeamDetail returns the roster of one team joined with current-season
// scores. Athletes without a score record show zeros.
func (s *GameTeamService) GetTeamDetail(ctx context.Context, gameTeamID int64) (TeamDetailView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.GetTeamDetail")
	defer span.End()

	if gameTeamID <= 0 {
		return TeamDetailView{}, fmt.Errorf("%w: game team id is required", ErrInvalidInput)
	}
	item, exists, err := s.gameTeamRepo.GetByID(ctx, gameTeamID)
	if err != nil {
		return TeamDetailView{}, fmt.Errorf("get game team: %w", err)
	}
	if !exists {
		return TeamDetailView{}, fmt.Errorf("%w: game_team=%d", ErrNotFound, gameTeamID)
	}

	views, err := s.buildDetails(ctx, []gameteam.GameTeam{item})
	if err != nil {
		return TeamDetailView{}, err
	}
	return views[0], nil
}

func (s *GameTeamService) ListRegisteredTeams(ctx context.Context, gameID int64, walletAddr string) ([]TeamDetailView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.ListRegisteredTeams", gameIDAttr(gameID))
	defer span.End()

	walletAddr = strings.TrimSpace(walletAddr)
	if walletAddr == "" {
		return nil, fmt.Errorf("%w: wallet_addr is required", ErrInvalidInput)
	}
	if _, err := s.requireGame(ctx, gameID); err != nil {
		return nil, err
	}

	acc, exists, err := s.accountRepo.GetAccountByWallet(ctx, walletAddr)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if !exists {
		return []TeamDetailView{}, nil
	}

	teams, err := s.gameTeamRepo.ListByGameAndAccount(ctx, gameID, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("list game teams: %w", err)
	}
	return s.buildDetails(ctx, teams)
}

// RegisterTeam enters a roster into a game. Every token is checked on chain
// for owner and athlete before anything is written.
func (s *GameTeamService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (TeamDetailView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTeamService.RegisterTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.WalletAddr = strings.TrimSpace(input.WalletAddr)
	input.ContractAddr = strings.TrimSpace(input.ContractAddr)
	tokens := make([]TeamTokenInput, len(input.Tokens))
	for i, tok := range input.Tokens {
		tok.TokenID = strings.TrimSpace(tok.TokenID)
		tokens[i] = tok
	}
	input.Tokens = tokens
	if err := validateRegisterTeamInput(input); err != nil {
		return TeamDetailView{}, err
	}
	if _, err := s.requireGame(ctx, input.GameID); err != nil {
		return TeamDetailView{}, err
	}

	athleteIDs := make([]int64, 0, len(input.Tokens))
	for _, tok := range input.Tokens {
		athleteIDs = append(athleteIDs, tok.AthleteID)
	}
	athletes, err := s.athleteRepo.GetByIDs(ctx, athleteIDs)
	if err != nil {
		return TeamDetailView{}, fmt.Errorf("get athletes: %w", err)
	}
	known := make(map[int64]struct{}, len(athletes))
	for _, a := range athletes {
		known[a.ID] = struct{}{}
	}
	for _, tok := range input.Tokens {
		if _, ok := known[tok.AthleteID]; !ok {
			return TeamDetailView{}, fmt.Errorf("%w: athlete=%d not found", ErrInvalidInput, tok.AthleteID)
		}
	}

	for _, tok := range input.Tokens {
		if err := s.verifyTokenOwnership(ctx, input.ContractAddr, input.WalletAddr, tok); err != nil {
			return TeamDetailView{}, err
		}
	}

	acc, err := s.accountRepo.GetOrCreateAccount(ctx, input.WalletAddr)
	if err != nil {
		return TeamDetailView{}, fmt.Errorf("get or create account: %w", err)
	}
	coll, err := s.accountRepo.GetOrCreateCollection(ctx, input.ContractAddr)
	if err != nil {
		return TeamDetailView{}, fmt.Errorf("get or create collection: %w", err)
	}

	listed, err := s.listedAssetIDs(ctx, input.GameID)
	if err != nil {
		return TeamDetailView{}, err
	}

	assets := make([]gameteam.GameAsset, 0, len(input.Tokens))
	for _, tok := range input.Tokens {
		asset, err := s.accountRepo.GetOrCreateAsset(ctx, account.Asset{
			TokenID:      tok.TokenID,
			CollectionID: coll.ID,
			OwnerID:      acc.ID,
		})
		if err != nil {
			return TeamDetailView{}, fmt.Errorf("get or create asset: %w", err)
		}
		if _, ok := listed[asset.ID]; ok {
			return TeamDetailView{}, fmt.Errorf("%w: token %s already listed in this game", ErrInvalidInput, tok.TokenID)
		}
		ga, err := s.gameTeamRepo.GetOrCreateGameAthlete(ctx, input.GameID, tok.AthleteID)
		if err != nil {
			return TeamDetailView{}, fmt.Errorf("get or create game athlete: %w", err)
		}
		assets = append(assets, gameteam.GameAsset{GameAthleteID: ga.ID, AssetID: asset.ID})
	}

	created, err := s.gameTeamRepo.Create(ctx, gameteam.GameTeam{
		GameID:    input.GameID,
		AccountID: acc.ID,
		Name:      input.Name,
	}, assets)
	if err != nil {
		return TeamDetailView{}, fmt.Errorf("create game team: %w", err)
	}

	s.logger.InfoContext(ctx, "game team registered",
		"game_id", input.GameID,
		"game_team_id", created.ID,
		"wallet_addr", input.WalletAddr,
		"tokens", len(assets),
	)

	views, err := s.buildDetails(ctx, []gameteam.GameTeam{created})
	if err != nil {
		return TeamDetailView{}, err
	}
	return views[0], nil
}

func validateRegisterTeamInput(input RegisterTeamInput) error {
	switch {
	case input.GameID <= 0:
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	case input.Name == "":
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	case input.WalletAddr == "":
		return fmt.Errorf("%w: wallet_addr is required", ErrInvalidInput)
	case input.ContractAddr == "":
		return fmt.Errorf("%w: contract_addr is required", ErrInvalidInput)
	case len(input.Tokens) == 0:
		return fmt.Errorf("%w: at least one token is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(input.Tokens))
	for _, tok := range input.Tokens {
		tokenID := tok.TokenID
		if tokenID == "" || tok.AthleteID <= 0 {
			return fmt.Errorf("%w: token_id and athlete_id are required", ErrInvalidInput)
		}
		if _, ok := seen[tokenID]; ok {
			return fmt.Errorf("%w: duplicate token %s", ErrInvalidInput, tokenID)
		}
		seen[tokenID] = struct{}{}
	}
	return nil
}

func (s *GameTeamService) verifyTokenOwnership(ctx context.Context, contractAddr, walletAddr string, tok TeamTokenInput) error {
	if s.chain == nil {
		return fmt.Errorf("%w: chain querier is not configured", ErrDependencyUnavailable)
	}

	raw, err := s.chain.QueryContract(ctx, contractAddr, allNFTInfoQuery{AllNFTInfo: tokenIDQuery{TokenID: tok.TokenID}})
	if err != nil {
		return upstreamFromChain(err)
	}
	var info allNFTInfoResponse
	if err := decodeChainResult(raw, &info); err != nil {
		return err
	}

	if info.Access.Owner != walletAddr {
		return fmt.Errorf("%w: token %s is not owned by %s", ErrInvalidInput, tok.TokenID, walletAddr)
	}
	if int64(info.Info.Extension.AthleteID) != tok.AthleteID {
		return fmt.Errorf("%w: token %s does not carry athlete %d", ErrInvalidInput, tok.TokenID, tok.AthleteID)
	}
	return nil
}

// listedAssetIDs covers every team in the game, so a token transferred after
// entry cannot be entered again by its new owner.
func (s *GameTeamService) listedAssetIDs(ctx context.Context, gameID int64) (map[int64]struct{}, error) {
	teams, err := s.gameTeamRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game teams: %w", err)
	}
	out := make(map[int64]struct{})
	if len(teams) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	slots, err := s.gameTeamRepo.ListRoster(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	for _, slot := range slots {
		out[slot.AssetID] = struct{}{}
	}
	return out, nil
}

func (s *GameTeamService) buildDetails(ctx context.Context, teams []gameteam.GameTeam) ([]TeamDetailView, error) {
	views := make([]TeamDetailView, 0, len(teams))
	if len(teams) == 0 {
		return views, nil
	}

	teamIDs := make([]int64, 0, len(teams))
	accountIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
		accountIDs = append(accountIDs, t.AccountID)
	}

	slots, err := s.gameTeamRepo.ListRoster(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	athleteIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		athleteIDs = append(athleteIDs, slot.AthleteID)
	}

	athletes, err := s.athleteRepo.GetByIDs(ctx, athleteIDs)
	if err != nil {
		return nil, fmt.Errorf("get athletes: %w", err)
	}
	athleteByID := make(map[int64]athlete.Athlete, len(athletes))
	for _, a := range athletes {
		athleteByID[a.ID] = a
	}

	season := currentSeason(s.scoreCfg, s.now())
	records, err := s.scoreRepo.ListByAthletes(ctx, score.SeasonWindow(season), athleteIDs)
	if err != nil {
		return nil, fmt.Errorf("list season scores: %w", err)
	}
	recordByAthlete := make(map[int64]score.Record, len(records))
	for _, r := range records {
		recordByAthlete[r.AthleteID] = r
	}

	accounts, err := s.accountRepo.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	walletByAccount := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		walletByAccount[a.ID] = a.WalletAddr
	}

	slotsByTeam := make(map[int64][]gameteam.RosterSlot, len(teams))
	for _, slot := range slots {
		slotsByTeam[slot.GameTeamID] = append(slotsByTeam[slot.GameTeamID], slot)
	}

	for _, t := range teams {
		view := TeamDetailView{
			ID:           t.ID,
			GameID:       t.GameID,
			Name:         t.Name,
			WalletAddr:   walletByAccount[t.AccountID],
			FantasyScore: t.FantasyScore,
			IsClaimed:    t.IsClaimed,
			Season:       season,
			Athletes:     make([]TeamAthleteView, 0, len(slotsByTeam[t.ID])),
		}
		for _, slot := range slotsByTeam[t.ID] {
			a := athleteByID[slot.AthleteID]
			row := TeamAthleteView{
				AthleteID: slot.AthleteID,
				APIID:     a.APIID,
				AssetID:   slot.AssetID,
				FirstName: a.FirstName,
				LastName:  a.LastName,
				Position:  a.Position,
				ImageURL:  a.ImageURL,
			}
			if rec, ok := recordByAthlete[slot.AthleteID]; ok {
				row.ScoreView = scoreViewFromRecord(rec)
				if rec.Position != "" {
					row.Position = rec.Position
				}
			}
			view.Athletes = append(view.Athletes, row)
		}
		sort.SliceStable(view.Athletes, func(i, j int) bool {
			return view.Athletes[i].AssetID < view.Athletes[j].AssetID
		})
		views = append(views, view)
	}
	return views, nil
}
