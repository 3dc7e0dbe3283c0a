package patient

import "context"

type Repository interface {
	List(ctx context.Context) ([]Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	// Create appends p to the collection.
	Create(ctx context.Context, p Patient) error
	// UpdateFields replaces the registration fields of the patient with
	// existingID in place, leaving its visit history untouched. Returns the
	// updated patient, or ErrPatientNotFound.
	UpdateFields(ctx context.Context, existingID string, fields Registration) (*Patient, error)
	// AppendVisit appends v to the end of the patient's visit history and
	// returns the whole updated patient, or ErrPatientNotFound. Existing
	// visits are never reordered or rewritten.
	AppendVisit(ctx context.Context, patientID string, v Visit) (*Patient, error)
}
