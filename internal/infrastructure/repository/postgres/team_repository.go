package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Upsert(ctx context.Context, items []team.Team) ([]team.Team, error) {
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("validate team api_id=%d: %w", item.APIID, err)
		}
		insertModel := teamInsertModel{
			Location:       item.Location,
			Name:           item.Name,
			APIID:          item.APIID,
			Key:            item.Key,
			PrimaryColor:   toNullString(item.PrimaryColor),
			SecondaryColor: toNullString(item.SecondaryColor),
		}
		query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (api_id) WHERE deleted_at IS NULL
DO UPDATE SET
    location = EXCLUDED.location,
    name = EXCLUDED.name,
    key = EXCLUDED.key,
    primary_color = EXCLUDED.primary_color,
    secondary_color = EXCLUDED.secondary_color,
    updated_at = NOW()
RETURNING *`)
		if err != nil {
			return nil, fmt.Errorf("build upsert team query: %w", err)
		}

		var row teamTableModel
		if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
			return nil, fmt.Errorf("upsert team api_id=%d: %w", item.APIID, err)
		}
		out = append(out, row.toDomain())
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert teams tx: %w", err)
	}
	return out, nil
}

func (r *TeamRepository) ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]team.Team, error) {
	if len(apiIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.AnyOf("api_id", anyInt64(apiIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by api ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by api ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
