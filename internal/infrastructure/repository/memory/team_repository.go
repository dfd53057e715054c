package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	byAPIID map[int64]team.Team
	nextID  int64
	now     func() time.Time
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{byAPIID: make(map[int64]team.Team), now: time.Now}
	_, _ = r.Upsert(context.Background(), teams)
	return r
}

func (r *TeamRepository) Upsert(_ context.Context, items []team.Team) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]team.Team, 0, len(items))
	now := r.now()
	for _, item := range items {
		if existing, ok := r.byAPIID[item.APIID]; ok {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
		} else {
			r.nextID++
			item.ID = r.nextID
			item.CreatedAt = now
		}
		item.UpdatedAt = now
		r.byAPIID[item.APIID] = item
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamRepository) ListByAPIIDs(_ context.Context, apiIDs []int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(apiIDs))
	for _, apiID := range uniqueIDs(apiIDs) {
		if item, ok := r.byAPIID[apiID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byAPIID {
		if item.ID == id {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byAPIID))
	for _, item := range r.byAPIID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
