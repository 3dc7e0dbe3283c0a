package receipt

import (
	"context"

	"github.com/clinichq/clinic/internal/domain/patient"
	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type repoKV struct {
	store kvstore.Store
}

// NewRepoKV returns a Repository backed by the receipts collection of store.
func NewRepoKV(store kvstore.Store) Repository {
	return &repoKV{store: store}
}

func (r *repoKV) List(ctx context.Context) ([]Receipt, error) {
	return kvstore.DecodeCollection[Receipt](kvstore.View(ctx, r.store), kvstore.KeyReceipts)
}

func (r *repoKV) GetByID(ctx context.Context, id string) (*Receipt, error) {
	receipts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			return &receipts[i], nil
		}
	}
	return nil, ErrReceiptNotFound
}

// Generate runs one transaction over both collections. Patient and visit are
// located before anything is staged, so a missing or already-receipted visit
// aborts with no write to either collection.
func (r *repoKV) Generate(ctx context.Context, rcpt Receipt) (*Receipt, error) {
	err := r.store.Update(ctx, func(tx kvstore.Tx) error {
		patients, err := kvstore.DecodeCollection[patient.Patient](tx, kvstore.KeyPatients)
		if err != nil {
			return err
		}

		var visit *patient.Visit
		for i := range patients {
			if patients[i].ID != rcpt.PatientID {
				continue
			}
			visit, err = patients[i].FindVisit(rcpt.VisitID)
			if err != nil {
				return err
			}
			if rcpt.DoctorID == "" {
				rcpt.DoctorID = patients[i].DoctorID
			}
			break
		}
		if visit == nil {
			return patient.ErrPatientNotFound
		}
		if visit.ReceiptGenerated {
			return ErrReceiptExists
		}

		receipts, err := kvstore.DecodeCollection[Receipt](tx, kvstore.KeyReceipts)
		if err != nil {
			return err
		}
		receipts = append(receipts, rcpt)

		visit.Paid = true
		visit.ReceiptGenerated = true

		if err := kvstore.EncodeCollection(tx, kvstore.KeyReceipts, receipts); err != nil {
			return err
		}
		return kvstore.EncodeCollection(tx, kvstore.KeyPatients, patients)
	})
	if err != nil {
		return nil, err
	}
	return &rcpt, nil
}
