package lookup

import (
	"context"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Service struct {
	repo Repository
}

func NewService(db *backend.Client) *Service {
	return &Service{repo: New(db)}
}

func (s *Service) GetAll(ctx context.Context) ([]Lookup, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Lookup, error) {
	return s.repo.Get(ctx, id)
}

// Choices returns the distinct values stored under key, sorted for display.
func (s *Service) Choices(ctx context.Context, key string) ([]string, error) {
	rows, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		v := strings.TrimSpace(r.LookupValue)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	collate.New(language.English, collate.IgnoreCase).SortStrings(values)
	return values, nil
}

func (s *Service) validate(l *Lookup) error {
	var problems []string
	if strings.TrimSpace(l.LookupKey) == "" {
		problems = append(problems, "lookup_key is required")
	}
	if strings.TrimSpace(l.LookupValue) == "" {
		problems = append(problems, "lookup_value is required")
	}
	if len(problems) > 0 {
		return &apperr.ValidationError{Problems: problems}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, l *Lookup) (*Lookup, error) {
	if err := s.validate(l); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, l *Lookup) error {
	if err := s.validate(l); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, l)
	return err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
