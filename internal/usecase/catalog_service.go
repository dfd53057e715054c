package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
)

// AthleteWithTeam is an athlete with its club attached. Team is nil when the
// club row is missing.
type AthleteWithTeam struct {
	Athlete athlete.Athlete
	Team    *team.Team
}

// CatalogService serves the synced teams and athletes.
type CatalogService struct {
	teamRepo    team.Repository
	athleteRepo athlete.Repository
}

func NewCatalogService(teamRepo team.Repository, athleteRepo athlete.Repository) *CatalogService {
	return &CatalogService{teamRepo: teamRepo, athleteRepo: athleteRepo}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}

// ListAthletes returns athletes with their club attached; teamID > 0 filters.
func (s *CatalogService) ListAthletes(ctx context.Context, teamID int64) ([]AthleteWithTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListAthletes")
	defer span.End()

	if teamID < 0 {
		return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	items, err := s.athleteRepo.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return s.withTeams(ctx, items)
}

func (s *CatalogService) GetAthlete(ctx context.Context, athleteID int64) (AthleteWithTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetAthlete")
	defer span.End()

	if athleteID <= 0 {
		return AthleteWithTeam{}, fmt.Errorf("%w: athlete id is required", ErrInvalidInput)
	}
	items, err := s.athleteRepo.GetByIDs(ctx, []int64{athleteID})
	if err != nil {
		return AthleteWithTeam{}, fmt.Errorf("get athlete: %w", err)
	}
	if len(items) == 0 {
		return AthleteWithTeam{}, fmt.Errorf("%w: athlete=%d", ErrNotFound, athleteID)
	}
	views, err := s.withTeams(ctx, items[:1])
	if err != nil {
		return AthleteWithTeam{}, err
	}
	return views[0], nil
}

func (s *CatalogService) withTeams(ctx context.Context, items []athlete.Athlete) ([]AthleteWithTeam, error) {
	views := make([]AthleteWithTeam, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamByID := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	for _, a := range items {
		view := AthleteWithTeam{Athlete: a}
		if t, ok := teamByID[a.TeamID]; ok {
			view.Team = &t
		}
		views = append(views, view)
	}
	return views, nil
}
