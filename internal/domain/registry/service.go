package registry

import (
	"context"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Seed writes the canonical doctors if the roster is empty. Safe to call on
// every start.
func (s *Service) Seed(ctx context.Context) error {
	seeded, err := s.repo.SeedIfEmpty(ctx, DefaultDoctors())
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Info().Int("doctors", len(DefaultDoctors())).Msg("seeded doctor roster")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}
