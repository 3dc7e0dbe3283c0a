package receipt

import "context"

// Repository persists receipts and ties generation to the visit's payment
// flags in a single commit.
type Repository interface {
	List(ctx context.Context) ([]Receipt, error)
	GetByID(ctx context.Context, id string) (*Receipt, error)

	// Generate appends rcpt and marks its visit paid in one transaction.
	// A blank rcpt.DoctorID is filled from the patient record. Fails with
	// patient.ErrPatientNotFound, patient.ErrVisitNotFound, or
	// ErrReceiptExists, writing nothing.
	Generate(ctx context.Context, rcpt Receipt) (*Receipt, error)
}
