package score

import "context"

// Repository persists score records. Upsert overwrites the stored fields of
// an existing (athlete, window) row and never creates a second one.
type Repository interface {
	Upsert(ctx context.Context, records []Record) error
	ListByAthletes(ctx context.Context, window Window, athleteIDs []int64) ([]Record, error)
}
