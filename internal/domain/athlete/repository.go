package athlete

import "context"

// Repository describes athlete persistence needs from use cases.
type Repository interface {
	// Upsert inserts or updates one athlete keyed by provider id. Concurrent
	// calls for the same APIID converge on a single row.
	Upsert(ctx context.Context, item Athlete) (Athlete, error)
	ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]Athlete, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Athlete, error)
	// List returns every athlete ordered by id; teamID > 0 narrows to one club.
	List(ctx context.Context, teamID int64) ([]Athlete, error)
}
