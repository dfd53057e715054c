package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
)

const (
	// LeaderboardMinEntries is the size every leaderboard is padded to.
	LeaderboardMinEntries = 10
	// PlaceholderWalletAddr marks padding rows on the leaderboard.
	PlaceholderWalletAddr = "terra1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"

	defaultLeaderboardPageSize = 10
	maxLeaderboardPageSize     = 100
)

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	GameTeamID    int64   `json:"game_team_id,omitempty"`
	Name          string  `json:"name"`
	WalletAddr    string  `json:"wallet_addr"`
	FantasyScore  float64 `json:"fantasy_score"`
	IsPlaceholder bool    `json:"is_placeholder"`
}

type LeaderboardView struct {
	GameID     int64              `json:"game_id"`
	Prize      float64            `json:"prize"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalItems int                `json:"total_items"`
	TotalPages int                `json:"total_pages"`
	Entries    []LeaderboardEntry `json:"entries"`
}

type LeaderboardService struct {
	gameRepo     game.Repository
	gameTeamRepo gameteam.Repository
	accountRepo  account.Repository
}

func NewLeaderboardService(gameRepo game.Repository, gameTeamRepo gameteam.Repository, accountRepo account.Repository) *LeaderboardService {
	return &LeaderboardService{
		gameRepo:     gameRepo,
		gameTeamRepo: gameTeamRepo,
		accountRepo:  accountRepo,
	}
}

// Leaderboard ranks teams by score (desc), then creation time and id (asc),
// pads to LeaderboardMinEntries and pages over the padded list.
func (s *LeaderboardService) Leaderboard(ctx context.Context, gameID int64, page, pageSize int) (LeaderboardView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard", gameIDAttr(gameID))
	defer span.End()

	if gameID <= 0 {
		return LeaderboardView{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if page < 0 || pageSize < 0 {
		return LeaderboardView{}, fmt.Errorf("%w: page and page_size must be positive", ErrInvalidInput)
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultLeaderboardPageSize
	}
	if pageSize > maxLeaderboardPageSize {
		pageSize = maxLeaderboardPageSize
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return LeaderboardView{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return LeaderboardView{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}

	teams, err := s.gameTeamRepo.ListByGame(ctx, gameID)
	if err != nil {
		return LeaderboardView{}, fmt.Errorf("list game teams: %w", err)
	}
	rankTeams(teams)

	accountIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		accountIDs = append(accountIDs, t.AccountID)
	}
	accounts, err := s.accountRepo.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return LeaderboardView{}, fmt.Errorf("get accounts: %w", err)
	}
	walletByAccount := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		walletByAccount[a.ID] = a.WalletAddr
	}

	entries := make([]LeaderboardEntry, 0, max(len(teams), LeaderboardMinEntries))
	for _, t := range teams {
		entries = append(entries, LeaderboardEntry{
			GameTeamID:   t.ID,
			Name:         t.Name,
			WalletAddr:   walletByAccount[t.AccountID],
			FantasyScore: t.FantasyScore,
		})
	}
	for len(entries) < LeaderboardMinEntries {
		entries = append(entries, LeaderboardEntry{
			WalletAddr:    PlaceholderWalletAddr,
			IsPlaceholder: true,
		})
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	total := len(entries)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return LeaderboardView{
		GameID:     g.ID,
		Prize:      g.Prize,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Entries:    entries[start:end],
	}, nil
}

func rankTeams(teams []gameteam.GameTeam) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.FantasyScore != b.FantasyScore {
			return a.FantasyScore > b.FantasyScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
