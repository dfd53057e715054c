package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create derives end_at from the start and duration before writing.
func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("validate game: %w", err)
	}

	query, args, err := qb.InsertModel("games", gameInsertModel{
		Name:            item.Name,
		StartAt:         item.StartAt.UTC(),
		EndAt:           item.EndAt.UTC(),
		DurationMinutes: item.DurationMinutes,
		Prize:           item.Prize,
		ImageURL:        toNullString(item.ImageURL),
	}, "RETURNING *")
	if err != nil {
		return game.Game{}, fmt.Errorf("build insert game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) ListActiveDuring(ctx context.Context, from, to time.Time) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Lt("start_at", to.UTC()),
			qb.Gte("end_at", from.UTC()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
