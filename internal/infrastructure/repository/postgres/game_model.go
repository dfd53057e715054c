package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
)

type gameTableModel struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           time.Time      `db:"end_at"`
	DurationMinutes int            `db:"duration_minutes"`
	Prize           float64        `db:"prize"`
	ImageURL        sql.NullString `db:"image_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type gameInsertModel struct {
	Name            string         `db:"name"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           time.Time      `db:"end_at"`
	DurationMinutes int            `db:"duration_minutes"`
	Prize           float64        `db:"prize"`
	ImageURL        sql.NullString `db:"image_url"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:              m.ID,
		Name:            m.Name,
		StartAt:         m.StartAt,
		EndAt:           m.EndAt,
		DurationMinutes: m.DurationMinutes,
		Prize:           m.Prize,
		ImageURL:        nullStringValue(m.ImageURL),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
