package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/clinic/internal/domain/patient"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Generate creates a receipt for the visit, dated today, and marks the visit
// paid. The amount is recorded as passed in; it is not required to equal the
// visit's fees.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Receipt, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rcpt := Receipt{
		ID:            uuid.NewString(),
		PatientID:     in.PatientID,
		VisitID:       in.VisitID,
		DoctorID:      in.DoctorID,
		Date:          s.now().Format(patient.DateLayout),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
	}
	return s.repo.Generate(ctx, rcpt)
}

// List returns all receipts in generation order.
func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	return s.repo.List(ctx)
}

// Get returns the receipt with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Receipt, error) {
	return s.repo.GetByID(ctx, id)
}
