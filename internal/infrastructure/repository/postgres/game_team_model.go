package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
)

type gameTeamTableModel struct {
	ID           int64      `db:"id"`
	GameID       int64      `db:"game_id"`
	AccountID    int64      `db:"account_id"`
	Name         string     `db:"name"`
	FantasyScore float64    `db:"fantasy_score"`
	IsClaimed    bool       `db:"is_claimed"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type gameTeamInsertModel struct {
	GameID       int64   `db:"game_id"`
	AccountID    int64   `db:"account_id"`
	Name         string  `db:"name"`
	FantasyScore float64 `db:"fantasy_score"`
	IsClaimed    bool    `db:"is_claimed"`
}

type gameAthleteTableModel struct {
	ID        int64      `db:"id"`
	GameID    int64      `db:"game_id"`
	AthleteID int64      `db:"athlete_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type gameAthleteInsertModel struct {
	GameID    int64 `db:"game_id"`
	AthleteID int64 `db:"athlete_id"`
}

type gameAssetInsertModel struct {
	GameTeamID    int64 `db:"game_team_id"`
	GameAthleteID int64 `db:"game_athlete_id"`
	AssetID       int64 `db:"asset_id"`
}

type rosterSlotRow struct {
	GameTeamID  int64 `db:"game_team_id"`
	GameAssetID int64 `db:"game_asset_id"`
	AssetID     int64 `db:"asset_id"`
	AthleteID   int64 `db:"athlete_id"`
}

type dailyRunInsertModel struct {
	GameID       int64   `db:"game_id"`
	ScoreDate    string  `db:"score_date"`
	RunID        string  `db:"run_id"`
	TeamsUpdated int     `db:"teams_updated"`
	TotalDelta   float64 `db:"total_delta"`
}

func (m gameTeamTableModel) toDomain() gameteam.GameTeam {
	return gameteam.GameTeam{
		ID:           m.ID,
		GameID:       m.GameID,
		AccountID:    m.AccountID,
		Name:         m.Name,
		FantasyScore: m.FantasyScore,
		IsClaimed:    m.IsClaimed,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
