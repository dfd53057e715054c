package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	Location       string         `db:"location"`
	Name           string         `db:"name"`
	APIID          int64          `db:"api_id"`
	Key            string         `db:"key"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	Location       string         `db:"location"`
	Name           string         `db:"name"`
	APIID          int64          `db:"api_id"`
	Key            string         `db:"key"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:             m.ID,
		Location:       m.Location,
		Name:           m.Name,
		APIID:          m.APIID,
		Key:            m.Key,
		PrimaryColor:   nullStringValue(m.PrimaryColor),
		SecondaryColor: nullStringValue(m.SecondaryColor),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
