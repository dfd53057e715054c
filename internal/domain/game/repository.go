package game

import (
	"context"
	"time"
)

// Repository describes game persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Game) (Game, error)
	GetByID(ctx context.Context, id int64) (Game, bool, error)
	// ListActiveDuring returns games whose window overlaps [from, to).
	ListActiveDuring(ctx context.Context, from, to time.Time) ([]Game, error)
	// List returns games newest start first.
	List(ctx context.Context) ([]Game, error)
}
