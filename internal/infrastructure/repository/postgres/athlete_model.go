package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
)

type athleteTableModel struct {
	ID           int64          `db:"id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	APIID        int64          `db:"api_id"`
	TeamID       int64          `db:"team_id"`
	Position     string         `db:"position"`
	Jersey       int            `db:"jersey"`
	Salary       float64        `db:"salary"`
	IsActive     bool           `db:"is_active"`
	IsInjured    bool           `db:"is_injured"`
	ImageURL     sql.NullString `db:"image_url"`
	AnimationURL sql.NullString `db:"animation_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type athleteInsertModel struct {
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	APIID        int64          `db:"api_id"`
	TeamID       int64          `db:"team_id"`
	Position     string         `db:"position"`
	Jersey       int            `db:"jersey"`
	Salary       float64        `db:"salary"`
	IsActive     bool           `db:"is_active"`
	IsInjured    bool           `db:"is_injured"`
	ImageURL     sql.NullString `db:"image_url"`
	AnimationURL sql.NullString `db:"animation_url"`
}

func (m athleteTableModel) toDomain() athlete.Athlete {
	return athlete.Athlete{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		APIID:        m.APIID,
		TeamID:       m.TeamID,
		Position:     m.Position,
		Jersey:       m.Jersey,
		Salary:       m.Salary,
		IsActive:     m.IsActive,
		IsInjured:    m.IsInjured,
		ImageURL:     nullStringValue(m.ImageURL),
		AnimationURL: nullStringValue(m.AnimationURL),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
