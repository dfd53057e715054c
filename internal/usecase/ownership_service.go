package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultNFTInfoConcurrency = 4

type OwnershipConfig struct {
	// GameContractAddr holds the player_info query for locked tokens.
	GameContractAddr string
	// NFTInfoConcurrency bounds parallel all_nft_info lookups.
	NFTInfoConcurrency int
}

type AssetView struct {
	ID           int64  `json:"id"`
	TokenID      string `json:"token_id"`
	CollectionID int64  `json:"collection_id"`
	OwnerID      int64  `json:"owner_id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image_url"`
}

type TokenView struct {
	TokenID      string `json:"token_id"`
	Owner        string `json:"owner"`
	TokenURI     string `json:"token_uri,omitempty"`
	AthleteID    int64  `json:"athlete_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	ImageURL     string `json:"image_url"`
	IsLocked     bool   `json:"is_locked"`
	LockedGameID int64  `json:"locked_game_id,omitempty"`
	ScoreView
	// Week sums the date windows of the current Monday to Sunday week.
	Week ScoreView `json:"week"`
}

type TokenListView struct {
	Count  int         `json:"count"`
	Tokens []TokenView `json:"tokens"`
}

// OwnershipService mirrors on-chain ownership into accounts and assets and
// merges computed scores into owned tokens.
type OwnershipService struct {
	chain        ChainQuerier
	accountRepo  account.Repository
	athleteRepo  athlete.Repository
	scoreRepo    score.Repository
	gameTeamRepo gameteam.Repository
	cfg          OwnershipConfig
	scoreCfg     ScoreConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewOwnershipService(
	chain ChainQuerier,
	accountRepo account.Repository,
	athleteRepo athlete.Repository,
	scoreRepo score.Repository,
	gameTeamRepo gameteam.Repository,
	cfg OwnershipConfig,
	scoreCfg ScoreConfig,
	logger *logging.Logger,
) *OwnershipService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.NFTInfoConcurrency <= 0 {
		cfg.NFTInfoConcurrency = defaultNFTInfoConcurrency
	}

	return &OwnershipService{
		chain:        chain,
		accountRepo:  accountRepo,
		athleteRepo:  athleteRepo,
		scoreRepo:    scoreRepo,
		gameTeamRepo: gameTeamRepo,
		cfg:          cfg,
		scoreCfg:     scoreCfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *OwnershipService) mirror(ctx context.Context, walletAddr, contractAddr string) (account.Account, account.Collection, error) {
	walletAddr = strings.TrimSpace(walletAddr)
	contractAddr = strings.TrimSpace(contractAddr)
	if walletAddr == "" || contractAddr == "" {
		return account.Account{}, account.Collection{}, fmt.Errorf("%w: wallet and contract are required", ErrInvalidInput)
	}

	acc, err := s.accountRepo.GetOrCreateAccount(ctx, walletAddr)
	if err != nil {
		return account.Account{}, account.Collection{}, fmt.Errorf("get or create account: %w", err)
	}
	coll, err := s.accountRepo.GetOrCreateCollection(ctx, contractAddr)
	if err != nil {
		return account.Account{}, account.Collection{}, fmt.Errorf("get or create collection: %w", err)
	}
	return acc, coll, nil
}

// ListAccountAssets mirrors the token ids the wallet owns in a collection.
func (s *OwnershipService) ListAccountAssets(ctx context.Context, walletAddr, contractAddr string) ([]AssetView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnershipService.ListAccountAssets")
	defer span.End()

	acc, coll, err := s.mirror(ctx, walletAddr, contractAddr)
	if err != nil {
		return nil, err
	}

	raw, err := s.chain.QueryContract(ctx, coll.ContractAddr, tokensQuery{Tokens: ownerQuery{Owner: acc.WalletAddr}})
	if err != nil {
		return nil, upstreamFromChain(err)
	}
	var resp tokensResponse
	if err := decodeChainResult(raw, &resp); err != nil {
		return nil, err
	}

	out := make([]AssetView, 0, len(resp.Tokens))
	for _, tokenID := range resp.Tokens {
		asset, err := s.accountRepo.GetOrCreateAsset(ctx, account.Asset{
			TokenID:      tokenID,
			CollectionID: coll.ID,
			OwnerID:      acc.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("get or create asset: %w", err)
		}
		out = append(out, AssetView{
			ID:           asset.ID,
			TokenID:      asset.TokenID,
			CollectionID: asset.CollectionID,
			OwnerID:      asset.OwnerID,
			Name:         asset.Name,
			ImageURL:     asset.ImageURL,
		})
	}
	return out, nil
}

type lockedToken struct {
	index  int
	gameID int64
	view   TokenView
}

// ResolveOwnedTokens returns owned tokens plus tokens locked in unclaimed
// game entries, with current-season scores merged in. Any chain or decode
// failure fails the whole call.
func (s *OwnershipService) ResolveOwnedTokens(ctx context.Context, walletAddr, contractAddr string) (TokenListView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnershipService.ResolveOwnedTokens")
	defer span.End()

	acc, coll, err := s.mirror(ctx, walletAddr, contractAddr)
	if err != nil {
		return TokenListView{}, err
	}

	raw, err := s.chain.QueryContract(ctx, coll.ContractAddr, allTokensInfoQuery{AllTokensInfo: ownerQuery{Owner: acc.WalletAddr}})
	if err != nil {
		return TokenListView{}, upstreamFromChain(err)
	}
	var owned []tokenInfoResponse
	if err := decodeChainResult(raw, &owned); err != nil {
		return TokenListView{}, err
	}

	tokens := make([]TokenView, 0, len(owned))
	for _, t := range owned {
		tokens = append(tokens, TokenView{
			TokenID:   t.TokenID,
			Owner:     t.TokenInfo.Access.Owner,
			TokenURI:  t.TokenInfo.Info.TokenURI,
			AthleteID: int64(t.TokenInfo.Info.Extension.AthleteID),
			Name:      t.TokenInfo.Info.Extension.Name,
			ImageURL:  t.TokenInfo.Info.Extension.Image,
			ScoreView: scoreViewFromToken(t),
		})
	}

	locked, err := s.lockedTokens(ctx, coll.ContractAddr, acc)
	if err != nil {
		return TokenListView{}, err
	}
	tokens = append(tokens, locked...)

	if err := s.mergeScores(ctx, tokens); err != nil {
		return TokenListView{}, err
	}
	return TokenListView{Count: len(tokens), Tokens: tokens}, nil
}

func (s *OwnershipService) lockedTokens(ctx context.Context, contractAddr string, acc account.Account) ([]TokenView, error) {
	gameIDs, err := s.gameTeamRepo.ListUnclaimedGameIDs(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("list unclaimed games: %w", err)
	}
	if len(gameIDs) == 0 {
		return nil, nil
	}
	if s.cfg.GameContractAddr == "" {
		s.logger.WarnContext(ctx, "game contract not configured, skipping locked tokens", "games", len(gameIDs))
		return nil, nil
	}

	pending := make([]lockedToken, 0)
	seen := make(map[string]struct{})
	for _, gameID := range gameIDs {
		raw, err := s.chain.QueryContract(ctx, s.cfg.GameContractAddr, playerInfoQuery{
			PlayerInfo: playerInfoArgs{GameID: gameID, PlayerAddr: acc.WalletAddr},
		})
		if err != nil {
			return nil, upstreamFromChain(err)
		}
		var info playerInfoResponse
		if err := decodeChainResult(raw, &info); err != nil {
			return nil, err
		}
		for _, tokenID := range info.LockedTokens {
			if _, ok := seen[tokenID]; ok {
				continue
			}
			seen[tokenID] = struct{}{}
			pending = append(pending, lockedToken{index: len(pending), gameID: gameID, view: TokenView{TokenID: tokenID}})
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[lockedToken]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.cfg.NFTInfoConcurrency)
	for _, item := range pending {
		p.Go(func(ctx context.Context) (lockedToken, error) {
			raw, err := s.chain.QueryContract(ctx, contractAddr, allNFTInfoQuery{AllNFTInfo: tokenIDQuery{TokenID: item.view.TokenID}})
			if err != nil {
				return lockedToken{}, upstreamFromChain(err)
			}
			var info allNFTInfoResponse
			if err := decodeChainResult(raw, &info); err != nil {
				return lockedToken{}, err
			}
			item.view.Owner = info.Access.Owner
			item.view.TokenURI = info.Info.TokenURI
			item.view.AthleteID = int64(info.Info.Extension.AthleteID)
			item.view.Name = info.Info.Extension.Name
			item.view.ImageURL = info.Info.Extension.Image
			item.view.IsLocked = true
			item.view.LockedGameID = item.gameID
			return item, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	out := make([]TokenView, 0, len(results))
	for _, r := range results {
		out = append(out, r.view)
	}
	return out, nil
}

// mergeScores adds each athlete's current-season record onto the counters
// the token already carries and fills the weekly rollup.
func (s *OwnershipService) mergeScores(ctx context.Context, tokens []TokenView) error {
	athleteIDs := make([]int64, 0, len(tokens))
	for _, t := range tokens {
		if t.AthleteID > 0 {
			athleteIDs = append(athleteIDs, t.AthleteID)
		}
	}
	if len(athleteIDs) == 0 {
		return nil
	}

	athletes, err := s.athleteRepo.GetByIDs(ctx, athleteIDs)
	if err != nil {
		return fmt.Errorf("get athletes: %w", err)
	}
	athleteByID := make(map[int64]athlete.Athlete, len(athletes))
	for _, a := range athletes {
		athleteByID[a.ID] = a
	}

	window := score.SeasonWindow(currentSeason(s.scoreCfg, s.now()))
	records, err := s.scoreRepo.ListByAthletes(ctx, window, athleteIDs)
	if err != nil {
		return fmt.Errorf("list season scores: %w", err)
	}
	recordByAthlete := make(map[int64]score.Record, len(records))
	for _, r := range records {
		recordByAthlete[r.AthleteID] = r
	}

	week, err := s.weekScores(ctx, athleteIDs)
	if err != nil {
		return err
	}

	for i := range tokens {
		a, ok := athleteByID[tokens[i].AthleteID]
		if !ok {
			continue
		}
		tokens[i].Week = week[a.ID]
		tokens[i].Position = a.Position
		if a.ImageURL != "" {
			tokens[i].ImageURL = a.ImageURL
		}
		if rec, ok := recordByAthlete[a.ID]; ok {
			tokens[i].ScoreView = tokens[i].ScoreView.add(rec)
			if rec.Position != "" {
				tokens[i].Position = rec.Position
			}
		}
	}
	return nil
}

// weekWindows returns the date windows from Monday through Sunday of the week
// containing now.
func weekWindows(cfg ScoreConfig, now time.Time) []score.Window {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)

	out := make([]score.Window, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, score.DateWindow(monday.AddDate(0, 0, i)))
	}
	return out
}

// weekScores sums each athlete's daily records across the current week.
func (s *OwnershipService) weekScores(ctx context.Context, athleteIDs []int64) (map[int64]ScoreView, error) {
	out := make(map[int64]ScoreView, len(athleteIDs))
	for _, window := range weekWindows(s.scoreCfg, s.now()) {
		records, err := s.scoreRepo.ListByAthletes(ctx, window, athleteIDs)
		if err != nil {
			return nil, fmt.Errorf("list %s scores: %w", window.Key(), err)
		}
		for _, r := range records {
			out[r.AthleteID] = out[r.AthleteID].add(r)
		}
	}
	return out, nil
}
