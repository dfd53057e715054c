package gameteam

import (
	"fmt"
	"strings"
	"time"
)

// GameTeam is one account's fantasy roster entered into one game. Its
// FantasyScore only changes through daily score application.
type GameTeam struct {
	ID           int64
	GameID       int64
	AccountID    int64
	Name         string
	FantasyScore float64
	IsClaimed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t GameTeam) Validate() error {
	if t.GameID <= 0 {
		return fmt.Errorf("game team game id is required")
	}
	if t.AccountID <= 0 {
		return fmt.Errorf("game team account id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("game team name is required")
	}
	return nil
}

// GameAthlete marks an athlete as eligible within a game.
type GameAthlete struct {
	ID        int64
	GameID    int64
	AthleteID int64
}

// GameAsset binds one owned token to one roster slot of a game team.
type GameAsset struct {
	ID            int64
	GameTeamID    int64
	GameAthleteID int64
	AssetID       int64
}

// RosterSlot is a GameAsset resolved down to its athlete.
type RosterSlot struct {
	GameTeamID  int64
	GameAssetID int64
	AssetID     int64
	AthleteID   int64
}

// DailyRun is the marker written when a day's scores are applied to a game.
type DailyRun struct {
	GameID       int64
	ScoreDate    time.Time
	RunID        string
	TeamsUpdated int
	TotalDelta   float64
	CreatedAt    time.Time
}

func (r DailyRun) DateKey() string {
	return r.ScoreDate.Format("2006-01-02")
}
