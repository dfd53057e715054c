package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

const defaultSyncWorkers = 8

type TeamSyncResult struct {
	Received int `json:"received"`
	Upserted int `json:"upserted"`
	Skipped  int `json:"skipped"`
}

type AthleteSyncResult struct {
	Received int `json:"received"`
	Upserted int `json:"upserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AthleteSyncService maps provider teams and athletes onto internal records.
type AthleteSyncService struct {
	provider    StatsProvider
	teamRepo    team.Repository
	athleteRepo athlete.Repository
	workers     int
	logger      *logging.Logger
}

func NewAthleteSyncService(
	provider StatsProvider,
	teamRepo team.Repository,
	athleteRepo athlete.Repository,
	workers int,
	logger *logging.Logger,
) *AthleteSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSyncWorkers
	}

	return &AthleteSyncService{
		provider:    provider,
		teamRepo:    teamRepo,
		athleteRepo: athleteRepo,
		workers:     workers,
		logger:      logger,
	}
}

func (s *AthleteSyncService) SyncTeams(ctx context.Context) (TeamSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteSyncService.SyncTeams")
	defer span.End()

	items, err := s.provider.FetchTeams(ctx)
	if err != nil {
		return TeamSyncResult{}, err
	}

	result := TeamSyncResult{Received: len(items)}
	seen := make(map[int64]struct{}, len(items))
	teams := make([]team.Team, 0, len(items))
	for _, item := range items {
		t := team.Team{
			Location:       strings.TrimSpace(item.Location),
			Name:           strings.TrimSpace(item.Name),
			APIID:          item.APIID,
			Key:            strings.TrimSpace(item.Key),
			PrimaryColor:   item.PrimaryColor,
			SecondaryColor: item.SecondaryColor,
		}
		if err := t.Validate(); err != nil {
			result.Skipped++
			s.logger.WarnContext(ctx, "skip provider team", "api_id", item.APIID, "error", err)
			continue
		}
		if _, ok := seen[t.APIID]; ok {
			result.Skipped++
			continue
		}
		seen[t.APIID] = struct{}{}
		teams = append(teams, t)
	}
	if len(teams) == 0 {
		return result, nil
	}

	upserted, err := s.teamRepo.Upsert(ctx, teams)
	if err != nil {
		return TeamSyncResult{}, fmt.Errorf("upsert teams: %w", err)
	}
	result.Upserted = len(upserted)

	s.logger.InfoContext(ctx, "team sync completed",
		"received", result.Received,
		"upserted", result.Upserted,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *AthleteSyncService) SyncRoster(ctx context.Context) (AthleteSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteSyncService.SyncRoster")
	defer span.End()

	records, err := s.provider.FetchRoster(ctx)
	if err != nil {
		return AthleteSyncResult{}, err
	}
	return s.Resolve(ctx, records)
}

// Resolve upserts athletes keyed by provider id. Records whose provider team
// is unknown are skipped; the rest of the batch still runs.
func (s *AthleteSyncService) Resolve(ctx context.Context, records []ExternalAthlete) (AthleteSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteSyncService.Resolve")
	defer span.End()

	result := AthleteSyncResult{Received: len(records)}
	if len(records) == 0 {
		return result, nil
	}

	teamAPIIDs := make([]int64, 0, len(records))
	seenTeam := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, ok := seenTeam[r.TeamAPIID]; ok || r.TeamAPIID <= 0 {
			continue
		}
		seenTeam[r.TeamAPIID] = struct{}{}
		teamAPIIDs = append(teamAPIIDs, r.TeamAPIID)
	}

	teams, err := s.teamRepo.ListByAPIIDs(ctx, teamAPIIDs)
	if err != nil {
		return AthleteSyncResult{}, fmt.Errorf("list teams by api ids: %w", err)
	}
	teamIDByAPIID := make(map[int64]int64, len(teams))
	for _, t := range teams {
		teamIDByAPIID[t.APIID] = t.ID
	}

	pending := make([]athlete.Athlete, 0, len(records))
	for _, r := range records {
		teamID, ok := teamIDByAPIID[r.TeamAPIID]
		if !ok {
			result.Skipped++
			s.logger.WarnContext(ctx, "skip athlete with unresolved team",
				"api_id", r.APIID,
				"team_api_id", r.TeamAPIID,
			)
			continue
		}

		item := athleteFromExternal(r, teamID)
		if err := item.Validate(); err != nil {
			result.Skipped++
			s.logger.WarnContext(ctx, "skip invalid athlete", "api_id", r.APIID, "error", err)
			continue
		}
		pending = append(pending, item)
	}
	if len(pending) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(pending)))
	if err != nil {
		return AthleteSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var upserted atomic.Int32
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, item := range pending {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if _, err := s.athleteRepo.Upsert(ctx, item); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "upsert athlete failed", "api_id", item.APIID, "error", err)
				return
			}
			upserted.Add(1)
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit athlete upsert", "api_id", item.APIID, "error", err)
		}
	}
	workers.Wait()

	result.Upserted = int(upserted.Load())
	result.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "athlete sync completed",
		"received", result.Received,
		"upserted", result.Upserted,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

func athleteFromExternal(r ExternalAthlete, teamID int64) athlete.Athlete {
	return athlete.Athlete{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		APIID:     r.APIID,
		TeamID:    teamID,
		Position:  strings.TrimSpace(r.Position),
		Jersey:    r.Jersey,
		Salary:    r.Salary,
		IsActive:  r.Status == athlete.StatusActive,
		IsInjured: r.InjuryStatus != nil,
	}
}
