package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
)

var gameColumns = []string{
	"id", "name", "start_at", "end_at", "duration_minutes", "prize", "image_url",
	"created_at", "updated_at", "deleted_at",
}

func TestGameRepository_CreateDerivesEnd(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewGameRepository(db)
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO games (name, start_at, end_at, duration_minutes, prize, image_url) VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`)).
		WithArgs("Week 1", start, end, 90, 100.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(gameColumns).AddRow(1, "Week 1", start, end, 90, 100.0, nil, start, start, nil))

	created, err := repo.Create(context.Background(), game.Game{
		Name:            "Week 1",
		StartAt:         start,
		EndAt:           start.Add(time.Hour * 999),
		DurationMinutes: 90,
		Prize:           100,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if !created.EndAt.Equal(end) || created.ID != 1 {
		t.Fatalf("unexpected game: %+v", created)
	}
	expectationsMet(t, mock)
}

func TestGameRepository_ListActiveDuring(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewGameRepository(db)
	from := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM games WHERE start_at < $1 AND end_at >= $2 AND deleted_at IS NULL ORDER BY id`)).
		WithArgs(to, from).
		WillReturnRows(sqlmock.NewRows(gameColumns))

	got, err := repo.ListActiveDuring(context.Background(), from, to)
	if err != nil {
		t.Fatalf("list active games: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no games, got %d", len(got))
	}
	expectationsMet(t, mock)
}

func TestGameRepository_GetByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewGameRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM games WHERE id = $1 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(gameColumns))

	_, exists, err := repo.GetByID(context.Background(), 404)
	if err != nil || exists {
		t.Fatalf("unexpected result: exists=%v err=%v", exists, err)
	}
	expectationsMet(t, mock)
}

func TestGameRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewGameRepository(db)
	early := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 0, 7)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM games WHERE deleted_at IS NULL ORDER BY start_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows(gameColumns).
			AddRow(2, "Week 2", late, late.Add(time.Hour), 60, 50.0, nil, late, late, nil).
			AddRow(1, "Week 1", early, early.Add(time.Hour), 60, 50.0, nil, early, early, nil))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].Name != "Week 1" {
		t.Fatalf("unexpected games: %+v", got)
	}
	expectationsMet(t, mock)
}

func TestAthleteRepository_ListFiltersByTeam(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAthleteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM athletes WHERE deleted_at IS NULL AND team_id = $1 ORDER BY id`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM athletes WHERE deleted_at IS NULL ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.List(context.Background(), 2); err != nil {
		t.Fatalf("list athletes by team: %v", err)
	}
	if _, err := repo.List(context.Background(), 0); err != nil {
		t.Fatalf("list athletes: %v", err)
	}
	expectationsMet(t, mock)
}
