package registry

import "context"

type Repository interface {
	List(ctx context.Context) ([]Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	// SeedIfEmpty writes doctors iff the collection is currently empty and
	// reports whether it did. The check and the write are one atomic step.
	SeedIfEmpty(ctx context.Context, doctors []Doctor) (bool, error)
}
