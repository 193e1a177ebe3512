package pricing

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/calculation"
)

type Service struct {
	areas        *area.Service
	calculations *calculation.Service
	rules        Rules
}

func NewService(areas *area.Service, calculations *calculation.Service, rules Rules) *Service {
	return &Service{
		areas:        areas,
		calculations: calculations,
		rules:        rules,
	}
}

func (s *Service) Rules() Rules {
	return s.rules
}

// Services loads areas and calculations and returns the price list.
func (s *Service) Services(ctx context.Context) ([]ServiceRow, error) {
	areas, err := s.areas.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	calcs, err := s.calculations.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := Generate(areas, calcs, s.rules)
	log.Debug().
		Int("areas", len(areas)).
		Int("calculations", len(calcs)).
		Int("rows", len(rows)).
		Msg("generated services projection")
	return rows, nil
}
