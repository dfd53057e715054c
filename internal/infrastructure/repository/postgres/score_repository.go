package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

// scoreUpsertBatchSize keeps one statement well under the 65535 bind
// parameter limit of the wire protocol.
const scoreUpsertBatchSize = 500

const scoreUpsertSuffix = `ON CONFLICT (athlete_id, window_key) WHERE deleted_at IS NULL
DO UPDATE SET
    fantasy_score = EXCLUDED.fantasy_score,
    singles = EXCLUDED.singles,
    doubles = EXCLUDED.doubles,
    triples = EXCLUDED.triples,
    home_runs = EXCLUDED.home_runs,
    runs_batted_in = EXCLUDED.runs_batted_in,
    walks = EXCLUDED.walks,
    hit_by_pitch = EXCLUDED.hit_by_pitch,
    stolen_bases = EXCLUDED.stolen_bases,
    position = EXCLUDED.position,
    updated_at = NOW()`

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Upsert writes records in batches inside one transaction. Callers must not
// pass two records for the same (athlete, window) in one call.
func (r *ScoreRepository) Upsert(ctx context.Context, records []score.Record) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]scoreRecordInsertModel, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("validate score record athlete_id=%d: %w", rec.AthleteID, err)
		}
		models = append(models, scoreRecordInsertFromDomain(rec))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert score records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(models); start += scoreUpsertBatchSize {
		end := min(start+scoreUpsertBatchSize, len(models))
		query, args, err := qb.InsertModels("score_records", models[start:end], scoreUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert score records query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert score records batch=%d: %w", start/scoreUpsertBatchSize, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert score records tx: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListByAthletes(ctx context.Context, window score.Window, athleteIDs []int64) ([]score.Record, error) {
	if len(athleteIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("score_records").
		Where(
			qb.Eq("window_key", window.Key()),
			qb.AnyOf("athlete_id", anyInt64(athleteIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("athlete_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select score records query: %w", err)
	}

	var rows []scoreRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select score records window=%s: %w", window.Key(), err)
	}

	out := make([]score.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode score record id=%d: %w", row.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
