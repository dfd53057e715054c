package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

type AthleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

// Upsert keeps stored media URLs when the incoming record has none; roster
// feeds never carry them.
func (r *AthleteRepository) Upsert(ctx context.Context, item athlete.Athlete) (athlete.Athlete, error) {
	if err := item.Validate(); err != nil {
		return athlete.Athlete{}, fmt.Errorf("validate athlete api_id=%d: %w", item.APIID, err)
	}

	insertModel := athleteInsertModel{
		FirstName:    item.FirstName,
		LastName:     item.LastName,
		APIID:        item.APIID,
		TeamID:       item.TeamID,
		Position:     item.Position,
		Jersey:       item.Jersey,
		Salary:       item.Salary,
		IsActive:     item.IsActive,
		IsInjured:    item.IsInjured,
		ImageURL:     toNullString(item.ImageURL),
		AnimationURL: toNullString(item.AnimationURL),
	}
	query, args, err := qb.InsertModel("athletes", insertModel, `ON CONFLICT (api_id) WHERE deleted_at IS NULL
DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    team_id = EXCLUDED.team_id,
    position = EXCLUDED.position,
    jersey = EXCLUDED.jersey,
    salary = EXCLUDED.salary,
    is_active = EXCLUDED.is_active,
    is_injured = EXCLUDED.is_injured,
    image_url = COALESCE(EXCLUDED.image_url, athletes.image_url),
    animation_url = COALESCE(EXCLUDED.animation_url, athletes.animation_url),
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("build upsert athlete query: %w", err)
	}

	var row athleteTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return athlete.Athlete{}, fmt.Errorf("upsert athlete api_id=%d: %w", item.APIID, err)
	}
	return row.toDomain(), nil
}

func (r *AthleteRepository) ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]athlete.Athlete, error) {
	return r.listWhere(ctx, "api_id", apiIDs)
}

func (r *AthleteRepository) GetByIDs(ctx context.Context, ids []int64) ([]athlete.Athlete, error) {
	return r.listWhere(ctx, "id", ids)
}

func (r *AthleteRepository) listWhere(ctx context.Context, column string, ids []int64) ([]athlete.Athlete, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("athletes").
		Where(
			qb.AnyOf(column, anyInt64(ids)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athletes by %s query: %w", column, err)
	}

	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select athletes by %s: %w", column, err)
	}

	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AthleteRepository) List(ctx context.Context, teamID int64) ([]athlete.Athlete, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if teamID > 0 {
		conditions = append(conditions, qb.Eq("team_id", teamID))
	}
	query, args, err := qb.Select("*").From("athletes").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list athletes query: %w", err)
	}

	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}

	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
