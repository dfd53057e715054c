package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// Upsert writes teams keyed by provider id and returns them with internal ids.
	Upsert(ctx context.Context, teams []Team) ([]Team, error)
	ListByAPIIDs(ctx context.Context, apiIDs []int64) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
}
