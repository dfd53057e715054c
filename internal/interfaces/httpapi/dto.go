package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

const dateLayout = "2006-01-02"

type createGameRequest struct {
	Name          string    `json:"name" validate:"required,max=200"`
	StartDatetime time.Time `json:"start_datetime" validate:"required"`
	Duration      int       `json:"duration" validate:"required,gt=0"`
	Prize         float64   `json:"prize" validate:"gte=0"`
	Image         string    `json:"image" validate:"omitempty,url"`
}

type gameAthleteRequest struct {
	AthleteID    int64  `json:"athlete_id" validate:"required,gt=0"`
	TokenID      string `json:"token_id" validate:"required"`
	ContractAddr string `json:"contract_addr"`
}

type registerGameTeamRequest struct {
	Name         string               `json:"name" validate:"required,max=100"`
	Game         int64                `json:"game" validate:"required,gt=0"`
	WalletAddr   string               `json:"wallet_addr" validate:"required"`
	ContractAddr string               `json:"contract_addr"`
	Athletes     []gameAthleteRequest `json:"athletes" validate:"required,min=1,dive"`
}

// collection resolves the NFT collection for the team. Every athlete must come
// from the same contract.
func (r registerGameTeamRequest) collection() (string, error) {
	contract := strings.TrimSpace(r.ContractAddr)
	for _, a := range r.Athletes {
		addr := strings.TrimSpace(a.ContractAddr)
		if addr == "" {
			continue
		}
		if contract == "" {
			contract = addr
			continue
		}
		if addr != contract {
			return "", fmt.Errorf("%w: athletes must share one contract_addr", usecase.ErrInvalidInput)
		}
	}
	if contract == "" {
		return "", fmt.Errorf("%w: contract_addr is required", usecase.ErrInvalidInput)
	}
	return contract, nil
}

func (r registerGameTeamRequest) toInput() (usecase.RegisterTeamInput, error) {
	contract, err := r.collection()
	if err != nil {
		return usecase.RegisterTeamInput{}, err
	}
	tokens := make([]usecase.TeamTokenInput, 0, len(r.Athletes))
	for _, a := range r.Athletes {
		tokens = append(tokens, usecase.TeamTokenInput{
			TokenID:   strings.TrimSpace(a.TokenID),
			AthleteID: a.AthleteID,
		})
	}
	return usecase.RegisterTeamInput{
		GameID:       r.Game,
		Name:         r.Name,
		WalletAddr:   strings.TrimSpace(r.WalletAddr),
		ContractAddr: contract,
		Tokens:       tokens,
	}, nil
}

type seasonSyncRequest struct {
	Season string `json:"season" validate:"omitempty,numeric,len=4"`
}

type scoringRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// day returns the requested calendar day; zero lets the scorer pick yesterday.
func (r scoringRequest) day() time.Time {
	if strings.TrimSpace(r.Date) == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

type gameDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Duration      int     `json:"duration"`
	Prize         float64 `json:"prize"`
	Image         string  `json:"image"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		ID:            g.ID,
		Name:          g.Name,
		StartDatetime: g.StartAt.UTC().Format(time.RFC3339),
		EndDatetime:   g.EndAt.UTC().Format(time.RFC3339),
		Duration:      g.DurationMinutes,
		Prize:         g.Prize,
		Image:         g.ImageURL,
	}
}

type teamDTO struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
	Name     string `json:"name"`
	APIID    int64  `json:"api_id"`
	Key      string `json:"key,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Location: t.Location, Name: t.Name, APIID: t.APIID, Key: t.Key}
}

type athleteDTO struct {
	ID           int64    `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	APIID        int64    `json:"api_id"`
	Team         *teamDTO `json:"team"`
	Position     string   `json:"position"`
	Salary       float64  `json:"salary"`
	Jersey       int      `json:"jersey"`
	IsActive     bool     `json:"is_active"`
	IsInjured    bool     `json:"is_injured"`
	ImageURL     string   `json:"image_url"`
	AnimationURL string   `json:"animation_url"`
}

func athleteToDTO(item usecase.AthleteWithTeam) athleteDTO {
	a := item.Athlete
	out := athleteDTO{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		APIID:        a.APIID,
		Position:     a.Position,
		Salary:       a.Salary,
		Jersey:       a.Jersey,
		IsActive:     a.IsActive,
		IsInjured:    a.IsInjured,
		ImageURL:     a.ImageURL,
		AnimationURL: a.AnimationURL,
	}
	if item.Team != nil {
		t := teamToDTO(*item.Team)
		out.Team = &t
	}
	return out
}
