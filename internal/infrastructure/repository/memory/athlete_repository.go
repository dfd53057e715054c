package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
)

type AthleteRepository struct {
	mu      sync.RWMutex
	byAPIID map[int64]athlete.Athlete
	apiByID map[int64]int64
	nextID  int64
	now     func() time.Time
}

func NewAthleteRepository(items []athlete.Athlete) *AthleteRepository {
	r := &AthleteRepository{
		byAPIID: make(map[int64]athlete.Athlete),
		apiByID: make(map[int64]int64),
		now:     time.Now,
	}
	for _, item := range items {
		_, _ = r.Upsert(context.Background(), item)
	}
	return r
}

func (r *AthleteRepository) Upsert(_ context.Context, item athlete.Athlete) (athlete.Athlete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.byAPIID[item.APIID]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		if item.ImageURL == "" {
			item.ImageURL = existing.ImageURL
		}
		if item.AnimationURL == "" {
			item.AnimationURL = existing.AnimationURL
		}
	} else {
		if item.ID <= 0 {
			r.nextID++
			item.ID = r.nextID
		} else if item.ID > r.nextID {
			r.nextID = item.ID
		}
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	r.byAPIID[item.APIID] = item
	r.apiByID[item.ID] = item.APIID
	return item, nil
}

func (r *AthleteRepository) ListByAPIIDs(_ context.Context, apiIDs []int64) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]athlete.Athlete, 0, len(apiIDs))
	for _, apiID := range uniqueIDs(apiIDs) {
		if item, ok := r.byAPIID[apiID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AthleteRepository) GetByIDs(_ context.Context, ids []int64) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]athlete.Athlete, 0, len(ids))
	for _, id := range uniqueIDs(ids) {
		apiID, ok := r.apiByID[id]
		if !ok {
			continue
		}
		out = append(out, r.byAPIID[apiID])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AthleteRepository) List(_ context.Context, teamID int64) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]athlete.Athlete, 0, len(r.byAPIID))
	for _, item := range r.byAPIID {
		if teamID > 0 && item.TeamID != teamID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
