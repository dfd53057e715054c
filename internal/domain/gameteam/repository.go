package gameteam

import "context"

// Repository describes game team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (GameTeam, bool, error)
	ListByGame(ctx context.Context, gameID int64) ([]GameTeam, error)
	ListByGameAndAccount(ctx context.Context, gameID, accountID int64) ([]GameTeam, error)
	ListUnclaimedGameIDs(ctx context.Context, accountID int64) ([]int64, error)
	ListRoster(ctx context.Context, gameTeamIDs []int64) ([]RosterSlot, error)

	GetOrCreateGameAthlete(ctx context.Context, gameID, athleteID int64) (GameAthlete, error)
	// Create stores the team and its assets in one transaction.
	Create(ctx context.Context, team GameTeam, assets []GameAsset) (GameTeam, error)

	// ApplyDailyScores records run as the (game, date) marker and adds each
	// delta to its team with an atomic increment, all in one transaction. It
	// returns false without touching any team when the marker already exists.
	ApplyDailyScores(ctx context.Context, run DailyRun, deltas map[int64]float64) (bool, error)
}
