package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
)

type gameAthleteKey struct {
	gameID    int64
	athleteID int64
}

type runKey struct {
	gameID int64
	date   string
}

type GameTeamRepository struct {
	mu           sync.RWMutex
	teams        map[int64]gameteam.GameTeam
	gameAthletes map[gameAthleteKey]gameteam.GameAthlete
	assets       []gameteam.GameAsset
	runs         map[runKey]gameteam.DailyRun
	nextTeamID   int64
	nextGAID     int64
	nextAssetID  int64
	now          func() time.Time
}

func NewGameTeamRepository() *GameTeamRepository {
	return &GameTeamRepository{
		teams:        make(map[int64]gameteam.GameTeam),
		gameAthletes: make(map[gameAthleteKey]gameteam.GameAthlete),
		runs:         make(map[runKey]gameteam.DailyRun),
		now:          time.Now,
	}
}

func (r *GameTeamRepository) GetByID(_ context.Context, id int64) (gameteam.GameTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[id]
	return item, ok, nil
}

func (r *GameTeamRepository) ListByGame(_ context.Context, gameID int64) ([]gameteam.GameTeam, error) {
	return r.filterTeams(func(t gameteam.GameTeam) bool { return t.GameID == gameID }), nil
}

func (r *GameTeamRepository) ListByGameAndAccount(_ context.Context, gameID, accountID int64) ([]gameteam.GameTeam, error) {
	return r.filterTeams(func(t gameteam.GameTeam) bool {
		return t.GameID == gameID && t.AccountID == accountID
	}), nil
}

func (r *GameTeamRepository) ListUnclaimedGameIDs(_ context.Context, accountID int64) ([]int64, error) {
	teams := r.filterTeams(func(t gameteam.GameTeam) bool { return t.AccountID == accountID && !t.IsClaimed })
	ids := make([]int64, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.GameID)
	}
	ids = uniqueIDs(ids)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *GameTeamRepository) filterTeams(keep func(gameteam.GameTeam) bool) []gameteam.GameTeam {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameteam.GameTeam, 0)
	for _, t := range r.teams {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *GameTeamRepository) ListRoster(_ context.Context, gameTeamIDs []int64) ([]gameteam.RosterSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(gameTeamIDs))
	for _, id := range gameTeamIDs {
		wanted[id] = struct{}{}
	}
	athleteByGA := make(map[int64]int64, len(r.gameAthletes))
	for _, ga := range r.gameAthletes {
		athleteByGA[ga.ID] = ga.AthleteID
	}

	out := make([]gameteam.RosterSlot, 0)
	for _, asset := range r.assets {
		if _, ok := wanted[asset.GameTeamID]; !ok {
			continue
		}
		out = append(out, gameteam.RosterSlot{
			GameTeamID:  asset.GameTeamID,
			GameAssetID: asset.ID,
			AssetID:     asset.AssetID,
			AthleteID:   athleteByGA[asset.GameAthleteID],
		})
	}
	return out, nil
}

func (r *GameTeamRepository) GetOrCreateGameAthlete(_ context.Context, gameID, athleteID int64) (gameteam.GameAthlete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gameAthleteKey{gameID: gameID, athleteID: athleteID}
	if ga, ok := r.gameAthletes[key]; ok {
		return ga, nil
	}
	r.nextGAID++
	ga := gameteam.GameAthlete{ID: r.nextGAID, GameID: gameID, AthleteID: athleteID}
	r.gameAthletes[key] = ga
	return ga, nil
}

func (r *GameTeamRepository) Create(_ context.Context, item gameteam.GameTeam, assets []gameteam.GameAsset) (gameteam.GameTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, len(assets))
	for _, a := range assets {
		if _, ok := seen[a.AssetID]; ok {
			return gameteam.GameTeam{}, fmt.Errorf("duplicate asset %d in game team", a.AssetID)
		}
		seen[a.AssetID] = struct{}{}
	}

	r.nextTeamID++
	item.ID = r.nextTeamID
	item.CreatedAt = r.now()
	item.UpdatedAt = item.CreatedAt
	r.teams[item.ID] = item

	for _, a := range assets {
		r.nextAssetID++
		a.ID = r.nextAssetID
		a.GameTeamID = item.ID
		r.assets = append(r.assets, a)
	}
	return item, nil
}

func (r *GameTeamRepository) ApplyDailyScores(_ context.Context, run gameteam.DailyRun, deltas map[int64]float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := runKey{gameID: run.GameID, date: run.DateKey()}
	if _, ok := r.runs[key]; ok {
		return false, nil
	}
	for teamID := range deltas {
		t, ok := r.teams[teamID]
		if !ok || t.GameID != run.GameID {
			return false, fmt.Errorf("game team %d not in game %d", teamID, run.GameID)
		}
	}

	now := r.now()
	for teamID, delta := range deltas {
		t := r.teams[teamID]
		t.FantasyScore += delta
		t.UpdatedAt = now
		r.teams[teamID] = t
	}
	run.CreatedAt = now
	r.runs[key] = run
	return true, nil
}

// SetClaimed flips the claimed flag; used by fixtures and the memory driver seed.
func (r *GameTeamRepository) SetClaimed(id int64, claimed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.teams[id]; ok {
		t.IsClaimed = claimed
		r.teams[id] = t
	}
}
