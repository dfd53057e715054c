package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
)

func TestScoreRepository_UpsertWritesOneStatement(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewScoreRepository(db)

	records := []score.Record{
		{AthleteID: 1, Window: score.SeasonWindow("2021"), FantasyScore: 12.5, Stats: score.Stats{Singles: 3}, Position: "CF"},
		{AthleteID: 2, Window: score.SeasonWindow("2021"), FantasyScore: 4},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO score_records (athlete_id, window_kind, window_key, fantasy_score, singles, doubles, triples, home_runs, runs_batted_in, walks, hit_by_pitch, stolen_bases, position) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13), ($14,`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.Upsert(context.Background(), records); err != nil {
		t.Fatalf("upsert score records: %v", err)
	}
	expectationsMet(t, mock)
}

func TestScoreRepository_UpsertRejectsInvalidWindow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewScoreRepository(db)

	err := repo.Upsert(context.Background(), []score.Record{{AthleteID: 1, Window: score.Window{Kind: "week", Tag: "1"}}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	expectationsMet(t, mock)
}

func TestScoreRepository_ListByAthletes(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewScoreRepository(db)
	now := time.Date(2021, 6, 2, 0, 0, 0, 0, time.UTC)

	cols := []string{
		"id", "athlete_id", "window_kind", "window_key", "fantasy_score",
		"singles", "doubles", "triples", "home_runs", "runs_batted_in",
		"walks", "hit_by_pitch", "stolen_bases", "position",
		"created_at", "updated_at", "deleted_at",
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM score_records WHERE window_key = $1 AND athlete_id = ANY($2) AND deleted_at IS NULL ORDER BY athlete_id`)).
		WithArgs("date:2021-06-01", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 7, "date", "date:2021-06-01", 12.0, 1, 0, 0, 1, 2, 0, 0, 0, "SS", now, now, nil))

	got, err := repo.ListByAthletes(context.Background(), score.DateWindow(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)), []int64{7})
	if err != nil {
		t.Fatalf("list score records: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected record count: got=%d want=1", len(got))
	}
	if got[0].Window.Kind != score.WindowDate || got[0].Window.Tag != "2021-06-01" || got[0].Stats.HomeRuns != 1 {
		t.Fatalf("unexpected record: %+v", got[0])
	}
	expectationsMet(t, mock)
}
