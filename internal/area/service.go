package area

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
	return &Service{repo: New(db)}
}

func (s *Service) GetAll(ctx context.Context) ([]Area, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Area, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) validate(a *Area) error {
	var problems []string
	if strings.TrimSpace(a.Location) == "" {
		problems = append(problems, "location is required")
	}
	if strings.TrimSpace(a.LocationCategory) == "" {
		problems = append(problems, "location_category is required")
	}
	if len(problems) > 0 {
		return &apperr.ValidationError{Problems: problems}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Area) (*Area, error) {
	if err := s.validate(a); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Area) error {
	if err := s.validate(a); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, a)
	return err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
