package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-nft/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Upsert(ctx context.Context, items []team.Team) ([]team.Team, error) {
	out, err := r.next.Upsert(ctx, items)
	if err != nil {
		return nil, err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return out, nil
}

func (r *TeamRepository) ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]team.Team, error) {
	key := "team:api:" + idsKey(apiIDs)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByAPIIDs(ctx, apiIDs)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(id, 10)
	found, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return found.value, found.exists, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:all", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

type AthleteRepository struct {
	next  athlete.Repository
	cache *basecache.Store
}

func NewAthleteRepository(next athlete.Repository, cache *basecache.Store) *AthleteRepository {
	return &AthleteRepository{next: next, cache: cache}
}

func (r *AthleteRepository) Upsert(ctx context.Context, item athlete.Athlete) (athlete.Athlete, error) {
	out, err := r.next.Upsert(ctx, item)
	if err != nil {
		return athlete.Athlete{}, err
	}
	r.cache.DeletePrefix(ctx, "athlete:")
	return out, nil
}

// ListByAPIIDs is not cached; it runs once per ingestion pass and must see
// athletes the same pass just upserted.
func (r *AthleteRepository) ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]athlete.Athlete, error) {
	return r.next.ListByAPIIDs(ctx, apiIDs)
}

func (r *AthleteRepository) GetByIDs(ctx context.Context, ids []int64) ([]athlete.Athlete, error) {
	key := "athlete:ids:" + idsKey(ids)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]athlete.Athlete, error) {
		return r.next.GetByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return append([]athlete.Athlete(nil), items...), nil
}

func (r *AthleteRepository) List(ctx context.Context, teamID int64) ([]athlete.Athlete, error) {
	key := "athlete:list:" + strconv.FormatInt(teamID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]athlete.Athlete, error) {
		return r.next.List(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	return append([]athlete.Athlete(nil), items...), nil
}

type ScoreRepository struct {
	next  score.Repository
	cache *basecache.Store
}

func NewScoreRepository(next score.Repository, cache *basecache.Store) *ScoreRepository {
	return &ScoreRepository{next: next, cache: cache}
}

func (r *ScoreRepository) Upsert(ctx context.Context, records []score.Record) error {
	if err := r.next.Upsert(ctx, records); err != nil {
		return err
	}
	windows := make(map[string]struct{}, 2)
	for _, rec := range records {
		windows[rec.Window.Key()] = struct{}{}
	}
	for key := range windows {
		r.cache.DeletePrefix(ctx, scoreWindowPrefix(key))
	}
	return nil
}

func (r *ScoreRepository) ListByAthletes(ctx context.Context, window score.Window, athleteIDs []int64) ([]score.Record, error) {
	key := scoreWindowPrefix(window.Key()) + idsKey(athleteIDs)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]score.Record, error) {
		return r.next.ListByAthletes(ctx, window, athleteIDs)
	})
	if err != nil {
		return nil, err
	}
	return append([]score.Record(nil), items...), nil
}

func scoreWindowPrefix(windowKey string) string {
	return "score:" + windowKey + ":"
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	out, err := r.next.Create(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.DeletePrefix(ctx, "game:")
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	key := "game:id:" + strconv.FormatInt(id, 10)
	found, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[game.Game], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[game.Game]{value: item, exists: exists}, err
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return found.value, found.exists, nil
}

func (r *GameRepository) ListActiveDuring(ctx context.Context, from, to time.Time) ([]game.Game, error) {
	return r.next.ListActiveDuring(ctx, from, to)
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	items, err := basecache.Load(ctx, r.cache, "game:all", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

// lookup caches negative results too, so a missing id is not re-queried
// until the next write under its prefix.
type lookup[T any] struct {
	value  T
	exists bool
}

// idsKey is order and duplicate insensitive.
func idsKey(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	var prev int64
	for i, id := range sorted {
		if i > 0 && id == prev {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
		prev = id
	}
	return b.String()
}
