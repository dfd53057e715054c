package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the memory seed set into an empty database so a fresh
// environment has teams, athletes and one running game.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teams := memory.SeedTeams()
	for _, t := range teams {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (location, name, api_id, key, primary_color, secondary_color)
VALUES (:location, :name, :api_id, :key, :primary_color, :secondary_color)
ON CONFLICT (api_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"location":        t.Location,
			"name":            t.Name,
			"api_id":          t.APIID,
			"key":             t.Key,
			"primary_color":   t.PrimaryColor,
			"secondary_color": t.SecondaryColor,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %d query: %w", t.APIID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %d: %w", t.APIID, err)
		}
	}

	// Seed athletes point at teams by their position in SeedTeams.
	for _, a := range memory.SeedAthletes() {
		if a.TeamID < 1 || int(a.TeamID) > len(teams) {
			return fmt.Errorf("seed athlete %d references unknown team %d", a.APIID, a.TeamID)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO athletes (first_name, last_name, api_id, team_id, position, jersey, salary, is_active, is_injured)
SELECT :first_name, :last_name, :api_id, t.id, :position, :jersey, :salary, :is_active, FALSE
FROM teams t WHERE t.api_id = :team_api_id AND t.deleted_at IS NULL
ON CONFLICT (api_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"first_name":  a.FirstName,
			"last_name":   a.LastName,
			"api_id":      a.APIID,
			"position":    a.Position,
			"jersey":      a.Jersey,
			"salary":      a.Salary,
			"is_active":   a.IsActive,
			"team_api_id": teams[a.TeamID-1].APIID,
		})
		if err != nil {
			return fmt.Errorf("bind seed athlete %d query: %w", a.APIID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed athlete %d: %w", a.APIID, err)
		}
	}

	for _, g := range memory.SeedGames(now) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (name, start_at, end_at, duration_minutes, prize)
VALUES (:name, :start_at, :end_at, :duration_minutes, :prize)`, map[string]any{
			"name":             g.Name,
			"start_at":         g.StartAt.UTC(),
			"end_at":           g.EndAt.UTC(),
			"duration_minutes": g.DurationMinutes,
			"prize":            g.Prize,
		})
		if err != nil {
			return fmt.Errorf("bind seed game %s query: %w", g.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %s: %w", g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
