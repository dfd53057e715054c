package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
)

type scoreRecordTableModel struct {
	ID           int64      `db:"id"`
	AthleteID    int64      `db:"athlete_id"`
	WindowKind   string     `db:"window_kind"`
	WindowKey    string     `db:"window_key"`
	FantasyScore float64    `db:"fantasy_score"`
	Singles      float64    `db:"singles"`
	Doubles      float64    `db:"doubles"`
	Triples      float64    `db:"triples"`
	HomeRuns     float64    `db:"home_runs"`
	RunsBattedIn float64    `db:"runs_batted_in"`
	Walks        float64    `db:"walks"`
	HitByPitch   float64    `db:"hit_by_pitch"`
	StolenBases  float64    `db:"stolen_bases"`
	Position     string     `db:"position"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type scoreRecordInsertModel struct {
	AthleteID    int64   `db:"athlete_id"`
	WindowKind   string  `db:"window_kind"`
	WindowKey    string  `db:"window_key"`
	FantasyScore float64 `db:"fantasy_score"`
	Singles      float64 `db:"singles"`
	Doubles      float64 `db:"doubles"`
	Triples      float64 `db:"triples"`
	HomeRuns     float64 `db:"home_runs"`
	RunsBattedIn float64 `db:"runs_batted_in"`
	Walks        float64 `db:"walks"`
	HitByPitch   float64 `db:"hit_by_pitch"`
	StolenBases  float64 `db:"stolen_bases"`
	Position     string  `db:"position"`
}

func scoreRecordInsertFromDomain(r score.Record) scoreRecordInsertModel {
	return scoreRecordInsertModel{
		AthleteID:    r.AthleteID,
		WindowKind:   string(r.Window.Kind),
		WindowKey:    r.Window.Key(),
		FantasyScore: r.FantasyScore,
		Singles:      r.Stats.Singles,
		Doubles:      r.Stats.Doubles,
		Triples:      r.Stats.Triples,
		HomeRuns:     r.Stats.HomeRuns,
		RunsBattedIn: r.Stats.RunsBattedIn,
		Walks:        r.Stats.Walks,
		HitByPitch:   r.Stats.HitByPitch,
		StolenBases:  r.Stats.StolenBases,
		Position:     r.Position,
	}
}

func (m scoreRecordTableModel) toDomain() (score.Record, error) {
	window, err := score.ParseWindowKey(m.WindowKey)
	if err != nil {
		return score.Record{}, err
	}
	return score.Record{
		ID:           m.ID,
		AthleteID:    m.AthleteID,
		Window:       window,
		FantasyScore: m.FantasyScore,
		Stats: score.Stats{
			Singles:      m.Singles,
			Doubles:      m.Doubles,
			Triples:      m.Triples,
			HomeRuns:     m.HomeRuns,
			RunsBattedIn: m.RunsBattedIn,
			Walks:        m.Walks,
			HitByPitch:   m.HitByPitch,
			StolenBases:  m.StolenBases,
		},
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
