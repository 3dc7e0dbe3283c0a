package registry

import (
	"context"

	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type repoKV struct {
	store kvstore.Store
}

// NewRepoKV returns a Repository backed by the doctors collection of store.
func NewRepoKV(store kvstore.Store) Repository {
	return &repoKV{store: store}
}

func (r *repoKV) List(ctx context.Context) ([]Doctor, error) {
	return kvstore.DecodeCollection[Doctor](kvstore.View(ctx, r.store), kvstore.KeyDoctors)
}

func (r *repoKV) GetByID(ctx context.Context, id string) (*Doctor, error) {
	doctors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (r *repoKV) SeedIfEmpty(ctx context.Context, doctors []Doctor) (bool, error) {
	seeded := false
	err := r.store.Update(ctx, func(tx kvstore.Tx) error {
		existing, err := kvstore.DecodeCollection[Doctor](tx, kvstore.KeyDoctors)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		seeded = true
		return kvstore.EncodeCollection(tx, kvstore.KeyDoctors, doctors)
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
