package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

type GameTeamRepository struct {
	db *sqlx.DB
}

func NewGameTeamRepository(db *sqlx.DB) *GameTeamRepository {
	return &GameTeamRepository{db: db}
}

func (r *GameTeamRepository) GetByID(ctx context.Context, id int64) (gameteam.GameTeam, bool, error) {
	query, args, err := qb.Select("*").From("game_teams").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return gameteam.GameTeam{}, false, fmt.Errorf("build get game team query: %w", err)
	}

	var row gameTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameteam.GameTeam{}, false, nil
		}
		return gameteam.GameTeam{}, false, fmt.Errorf("get game team id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *GameTeamRepository) ListByGame(ctx context.Context, gameID int64) ([]gameteam.GameTeam, error) {
	return r.listTeams(ctx, qb.Eq("game_id", gameID))
}

func (r *GameTeamRepository) ListByGameAndAccount(ctx context.Context, gameID, accountID int64) ([]gameteam.GameTeam, error) {
	return r.listTeams(ctx, qb.Eq("game_id", gameID), qb.Eq("account_id", accountID))
}

func (r *GameTeamRepository) listTeams(ctx context.Context, conditions ...qb.Condition) ([]gameteam.GameTeam, error) {
	query, args, err := qb.Select("*").From("game_teams").
		Where(append(conditions, qb.IsNull("deleted_at"))...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game teams query: %w", err)
	}

	var rows []gameTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game teams: %w", err)
	}

	out := make([]gameteam.GameTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameTeamRepository) ListUnclaimedGameIDs(ctx context.Context, accountID int64) ([]int64, error) {
	query, args, err := qb.Select("DISTINCT game_id").From("game_teams").
		Where(
			qb.Eq("account_id", accountID),
			qb.Eq("is_claimed", false),
			qb.IsNull("deleted_at"),
		).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select unclaimed games query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select unclaimed games account_id=%d: %w", accountID, err)
	}
	return ids, nil
}

func (r *GameTeamRepository) ListRoster(ctx context.Context, gameTeamIDs []int64) ([]gameteam.RosterSlot, error) {
	if len(gameTeamIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(
		"gas.game_team_id",
		"gas.id AS game_asset_id",
		"gas.asset_id",
		"gat.athlete_id",
	).
		From("game_assets gas").
		Join("JOIN game_athletes gat ON gat.id = gas.game_athlete_id AND gat.deleted_at IS NULL").
		Where(
			qb.AnyOf("gas.game_team_id", anyInt64(gameTeamIDs)),
			qb.IsNull("gas.deleted_at"),
		).
		OrderBy("gas.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterSlotRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	out := make([]gameteam.RosterSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameteam.RosterSlot{
			GameTeamID:  row.GameTeamID,
			GameAssetID: row.GameAssetID,
			AssetID:     row.AssetID,
			AthleteID:   row.AthleteID,
		})
	}
	return out, nil
}

func (r *GameTeamRepository) GetOrCreateGameAthlete(ctx context.Context, gameID, athleteID int64) (gameteam.GameAthlete, error) {
	query, args, err := qb.InsertModel("game_athletes", gameAthleteInsertModel{
		GameID:    gameID,
		AthleteID: athleteID,
	}, `ON CONFLICT (game_id, athlete_id) WHERE deleted_at IS NULL
DO UPDATE SET updated_at = game_athletes.updated_at
RETURNING *`)
	if err != nil {
		return gameteam.GameAthlete{}, fmt.Errorf("build upsert game athlete query: %w", err)
	}

	var row gameAthleteTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return gameteam.GameAthlete{}, fmt.Errorf("upsert game athlete game_id=%d athlete_id=%d: %w", gameID, athleteID, err)
	}
	return gameteam.GameAthlete{ID: row.ID, GameID: row.GameID, AthleteID: row.AthleteID}, nil
}

func (r *GameTeamRepository) Create(ctx context.Context, item gameteam.GameTeam, assets []gameteam.GameAsset) (gameteam.GameTeam, error) {
	if err := item.Validate(); err != nil {
		return gameteam.GameTeam{}, fmt.Errorf("validate game team: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return gameteam.GameTeam{}, fmt.Errorf("begin tx create game team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("game_teams", gameTeamInsertModel{
		GameID:       item.GameID,
		AccountID:    item.AccountID,
		Name:         item.Name,
		FantasyScore: item.FantasyScore,
		IsClaimed:    item.IsClaimed,
	}, "RETURNING *")
	if err != nil {
		return gameteam.GameTeam{}, fmt.Errorf("build insert game team query: %w", err)
	}
	var row gameTeamTableModel
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return gameteam.GameTeam{}, fmt.Errorf("insert game team: %w", err)
	}

	if len(assets) > 0 {
		models := make([]gameAssetInsertModel, 0, len(assets))
		for _, a := range assets {
			models = append(models, gameAssetInsertModel{
				GameTeamID:    row.ID,
				GameAthleteID: a.GameAthleteID,
				AssetID:       a.AssetID,
			})
		}
		assetQuery, assetArgs, err := qb.InsertModels("game_assets", models, "")
		if err != nil {
			return gameteam.GameTeam{}, fmt.Errorf("build insert game assets query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, assetQuery, assetArgs...); err != nil {
			if isUniqueViolation(err) {
				return gameteam.GameTeam{}, fmt.Errorf("insert game assets: duplicate asset in game team: %w", err)
			}
			return gameteam.GameTeam{}, fmt.Errorf("insert game assets: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return gameteam.GameTeam{}, fmt.Errorf("commit create game team tx: %w", err)
	}
	return row.toDomain(), nil
}

// ApplyDailyScores claims the (game, date) marker first. A conflict means the
// day was already applied, and the transaction is rolled back untouched.
func (r *GameTeamRepository) ApplyDailyScores(ctx context.Context, run gameteam.DailyRun, deltas map[int64]float64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx apply daily scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	markerQuery, markerArgs, err := qb.InsertModel("game_score_runs", dailyRunInsertModel{
		GameID:       run.GameID,
		ScoreDate:    run.DateKey(),
		RunID:        run.RunID,
		TeamsUpdated: run.TeamsUpdated,
		TotalDelta:   run.TotalDelta,
	}, "ON CONFLICT (game_id, score_date) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert score run query: %w", err)
	}
	res, err := tx.ExecContext(ctx, markerQuery, markerArgs...)
	if err != nil {
		return false, fmt.Errorf("insert score run game_id=%d date=%s: %w", run.GameID, run.DateKey(), err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("score run rows affected: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	teamIDs := make([]int64, 0, len(deltas))
	for id := range deltas {
		teamIDs = append(teamIDs, id)
	}
	// Fixed lock order across concurrent runs.
	sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })

	for _, teamID := range teamIDs {
		query, args, err := qb.Update("game_teams").
			SetExpr("fantasy_score", "fantasy_score + ?", deltas[teamID]).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("id", teamID),
				qb.Eq("game_id", run.GameID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return false, fmt.Errorf("build increment game team score query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, fmt.Errorf("increment game team score id=%d: %w", teamID, err)
		}
		updated, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("game team score rows affected: %w", err)
		}
		if updated != 1 {
			return false, fmt.Errorf("game team %d not in game %d", teamID, run.GameID)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit apply daily scores tx: %w", err)
	}
	return true, nil
}
