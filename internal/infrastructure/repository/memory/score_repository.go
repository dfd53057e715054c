package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
)

type scoreKey struct {
	athleteID int64
	window    string
}

type ScoreRepository struct {
	mu     sync.RWMutex
	items  map[scoreKey]score.Record
	nextID int64
	now    func() time.Time
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[scoreKey]score.Record), now: time.Now}
}

func (r *ScoreRepository) Upsert(_ context.Context, records []score.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, rec := range records {
		key := scoreKey{athleteID: rec.AthleteID, window: rec.Window.Key()}
		if existing, ok := r.items[key]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		} else {
			r.nextID++
			rec.ID = r.nextID
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		r.items[key] = rec
	}
	return nil
}

func (r *ScoreRepository) ListByAthletes(_ context.Context, window score.Window, athleteIDs []int64) ([]score.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]score.Record, 0, len(athleteIDs))
	for _, id := range uniqueIDs(athleteIDs) {
		if rec, ok := r.items[scoreKey{athleteID: id, window: window.Key()}]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Len reports the number of stored records across all windows.
func (r *ScoreRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
