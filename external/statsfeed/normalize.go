package statsfeed

import (
	"strings"

	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

// playerStatRow is one row of PlayerSeasonStats or PlayerGameStatsByDate.
type playerStatRow struct {
	PlayerID                int64    `json:"PlayerID"`
	TeamID                  *int64   `json:"TeamID"`
	Position                *string  `json:"Position"`
	FantasyPointsDraftKings *float64 `json:"FantasyPointsDraftKings"`
	Singles                 *float64 `json:"Singles"`
	Doubles                 *float64 `json:"Doubles"`
	Triples                 *float64 `json:"Triples"`
	HomeRuns                *float64 `json:"HomeRuns"`
	RunsBattedIn            *float64 `json:"RunsBattedIn"`
	Walks                   *float64 `json:"Walks"`
	HitByPitch              *float64 `json:"HitByPitch"`
	StolenBases             *float64 `json:"StolenBases"`
}

type rosterRow struct {
	PlayerID     int64    `json:"PlayerID"`
	TeamID       *int64   `json:"TeamID"`
	FirstName    string   `json:"FirstName"`
	LastName     string   `json:"LastName"`
	Position     *string  `json:"Position"`
	Jersey       *int     `json:"Jersey"`
	Salary       *float64 `json:"Salary"`
	Status       string   `json:"Status"`
	InjuryStatus *string  `json:"InjuryStatus"`
}

type teamRow struct {
	TeamID         int64   `json:"TeamID"`
	City           string  `json:"City"`
	Name           string  `json:"Name"`
	Key            string  `json:"Key"`
	PrimaryColor   *string `json:"PrimaryColor"`
	SecondaryColor *string `json:"SecondaryColor"`
}

// normalizeStats drops rows without a provider player id. A missing
// FantasyPointsDraftKings stays nil so the scorer can fall back to its rules.
func normalizeStats(rows []playerStatRow) []usecase.ExternalAthleteStat {
	out := make([]usecase.ExternalAthleteStat, 0, len(rows))
	for _, row := range rows {
		if row.PlayerID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalAthleteStat{
			APIID:        row.PlayerID,
			TeamAPIID:    derefInt64(row.TeamID),
			FantasyScore: copyFloat(row.FantasyPointsDraftKings),
			Position:     strings.TrimSpace(derefString(row.Position)),
			Stats: score.Stats{
				Singles:      derefFloat(row.Singles),
				Doubles:      derefFloat(row.Doubles),
				Triples:      derefFloat(row.Triples),
				HomeRuns:     derefFloat(row.HomeRuns),
				RunsBattedIn: derefFloat(row.RunsBattedIn),
				Walks:        derefFloat(row.Walks),
				HitByPitch:   derefFloat(row.HitByPitch),
				StolenBases:  derefFloat(row.StolenBases),
			},
		})
	}
	return out
}

func normalizeRoster(rows []rosterRow) []usecase.ExternalAthlete {
	out := make([]usecase.ExternalAthlete, 0, len(rows))
	for _, row := range rows {
		if row.PlayerID <= 0 {
			continue
		}
		var injury *string
		if row.InjuryStatus != nil {
			v := strings.TrimSpace(*row.InjuryStatus)
			injury = &v
		}
		out = append(out, usecase.ExternalAthlete{
			APIID:        row.PlayerID,
			TeamAPIID:    derefInt64(row.TeamID),
			FirstName:    strings.TrimSpace(row.FirstName),
			LastName:     strings.TrimSpace(row.LastName),
			Position:     strings.TrimSpace(derefString(row.Position)),
			Jersey:       derefInt(row.Jersey),
			Salary:       derefFloat(row.Salary),
			Status:       strings.TrimSpace(row.Status),
			InjuryStatus: injury,
		})
	}
	return out
}

func normalizeTeams(rows []teamRow) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, len(rows))
	for _, row := range rows {
		if row.TeamID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			APIID:          row.TeamID,
			Location:       strings.TrimSpace(row.City),
			Name:           strings.TrimSpace(row.Name),
			Key:            strings.TrimSpace(row.Key),
			PrimaryColor:   strings.TrimSpace(derefString(row.PrimaryColor)),
			SecondaryColor: strings.TrimSpace(derefString(row.SecondaryColor)),
		})
	}
	return out
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
