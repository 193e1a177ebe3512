package customer

import (
	"context"
	"strings"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Service struct {
	repo Repository
}

func NewService(db *backend.Client) *Service {
	return &Service{
		repo: New(db),
	}
}

func (s *Service) GetAll(ctx context.Context) ([]Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// validate checks customer fields for validity
func (s *Service) validate(c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return &apperr.ValidationError{Problems: []string{"customer name is required"}}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, c *Customer) (*Customer, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := s.validate(c); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, c)
	return err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
