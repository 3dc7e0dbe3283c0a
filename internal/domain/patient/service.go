package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterOrUpdate updates the registration fields of the patient with
// existingID when one is given and found, preserving its visit history.
// Otherwise it registers a new patient with a fresh id and empty history.
func (s *Service) RegisterOrUpdate(ctx context.Context, existingID string, fields Registration) (*Patient, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	if existingID != "" {
		updated, err := s.repo.UpdateFields(ctx, existingID, fields)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		// Unknown id: fall through and register a new patient.
	}

	p := Patient{
		ID:           uuid.NewString(),
		Name:         fields.Name,
		Age:          fields.Age,
		Gender:       fields.Gender,
		Address:      fields.Address,
		PhoneNumber:  fields.PhoneNumber,
		DoctorID:     fields.DoctorID,
		VisitHistory: []Visit{},
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Find returns the first patient in stored order whose name contains query
// case-insensitively or whose phone number contains it literally. An empty
// query matches nothing. Multiple matches tie-break on registration order;
// matches are never ranked by relevance.
func (s *Service) Find(ctx context.Context, query string) (*Patient, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrPatientNotFound
	}
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(query)
	for i := range patients {
		if strings.Contains(strings.ToLower(patients[i].Name), lower) ||
			strings.Contains(patients[i].PhoneNumber, query) {
			return &patients[i], nil
		}
	}
	return nil, ErrPatientNotFound
}

// Get returns the patient with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByDoctor returns the patients assigned to doctorID, preserving stored
// order. A doctor with no patients yields an empty slice.
func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := []Patient{}
	for _, p := range patients {
		if p.DoctorID == doctorID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// AddVisit appends a new visit to the patient's history. The visit starts
// unpaid with no receipt; history order is entry order, even for backdated
// visits.
func (s *Service) AddVisit(ctx context.Context, patientID string, in VisitInput) (*Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	v := Visit{
		ID:           uuid.NewString(),
		Date:         in.Date,
		Symptoms:     in.Symptoms,
		Diagnosis:    in.Diagnosis,
		Treatment:    in.Treatment,
		Prescription: in.Prescription,
		Fees:         in.Fees,
	}
	return s.repo.AppendVisit(ctx, patientID, v)
}
