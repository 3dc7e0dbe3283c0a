package patient

import (
	"context"

	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type repoKV struct {
	store kvstore.Store
}

// NewRepoKV returns a Repository backed by the patients collection of store.
// Every mutation is one read-modify-write critical section; the collection is
// rewritten wholesale on commit.
func NewRepoKV(store kvstore.Store) Repository {
	return &repoKV{store: store}
}

func (r *repoKV) List(ctx context.Context) ([]Patient, error) {
	return kvstore.DecodeCollection[Patient](kvstore.View(ctx, r.store), kvstore.KeyPatients)
}

func (r *repoKV) GetByID(ctx context.Context, id string) (*Patient, error) {
	patients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, ErrPatientNotFound
}

func (r *repoKV) Create(ctx context.Context, p Patient) error {
	return r.store.Update(ctx, func(tx kvstore.Tx) error {
		patients, err := kvstore.DecodeCollection[Patient](tx, kvstore.KeyPatients)
		if err != nil {
			return err
		}
		patients = append(patients, p)
		return kvstore.EncodeCollection(tx, kvstore.KeyPatients, patients)
	})
}

func (r *repoKV) UpdateFields(ctx context.Context, existingID string, fields Registration) (*Patient, error) {
	var updated *Patient
	err := r.store.Update(ctx, func(tx kvstore.Tx) error {
		patients, err := kvstore.DecodeCollection[Patient](tx, kvstore.KeyPatients)
		if err != nil {
			return err
		}
		for i := range patients {
			if patients[i].ID != existingID {
				continue
			}
			patients[i].Name = fields.Name
			patients[i].Age = fields.Age
			patients[i].Gender = fields.Gender
			patients[i].Address = fields.Address
			patients[i].PhoneNumber = fields.PhoneNumber
			patients[i].DoctorID = fields.DoctorID
			updated = &patients[i]
			return kvstore.EncodeCollection(tx, kvstore.KeyPatients, patients)
		}
		return ErrPatientNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *repoKV) AppendVisit(ctx context.Context, patientID string, v Visit) (*Patient, error) {
	var updated *Patient
	err := r.store.Update(ctx, func(tx kvstore.Tx) error {
		patients, err := kvstore.DecodeCollection[Patient](tx, kvstore.KeyPatients)
		if err != nil {
			return err
		}
		for i := range patients {
			if patients[i].ID != patientID {
				continue
			}
			patients[i].VisitHistory = append(patients[i].VisitHistory, v)
			updated = &patients[i]
			return kvstore.EncodeCollection(tx, kvstore.KeyPatients, patients)
		}
		return ErrPatientNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
