package calculation

import (
	"context"
	"strings"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(db *backend.Client) *Service {
	return &Service{repo: New(db)}
}

func (s *Service) GetAll(ctx context.Context) ([]Calculation, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Calculation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) FindByKey(ctx context.Context, key string) (*Calculation, error) {
	return s.repo.FindByKey(ctx, key)
}

// validate requires a key and rejects non-numeric or negative amounts
func (s *Service) validate(c *Calculation) error {
	var problems []string
	if strings.TrimSpace(c.ProductsTypeCategory) == "" {
		problems = append(problems, "products_type_category is required")
	}

	amounts := []struct {
		name  string
		value money.Amount
	}{
		{"min_hours", c.MinHours},
		{"min_km", c.MinKM},
		{"min_charges", c.MinCharges},
		{"additional_hour_charges", c.AdditionalHourCharges},
		{"running_hours", c.RunningHours},
		{"driver_allowance", c.DriverAllowance},
	}
	for _, a := range amounts {
		if !a.value.Valid() {
			problems = append(problems, a.name+" must be a number")
			continue
		}
		if a.value.IsNegative() {
			problems = append(problems, a.name+" must not be negative")
		}
	}

	if len(problems) > 0 {
		return &apperr.ValidationError{Problems: problems}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, c *Calculation) (*Calculation, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Calculation) error {
	if err := s.validate(c); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, c)
	return err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
