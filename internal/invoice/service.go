package invoice

import (
	"context"
	"strings"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/memo"
	"github.com/sbtransport/sbtconsole/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(db *backend.Client) *Service {
	return &Service{repo: New(db)}
}

func (s *Service) GetAll(ctx context.Context) ([]Invoice, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) FindByMemo(ctx context.Context, memoNo string) (*Invoice, error) {
	return s.repo.FindByMemo(ctx, memoNo)
}

// Get is FindByMemo with a missing invoice reported as NotFoundError.
func (s *Service) Get(ctx context.Context, memoNo string) (*Invoice, error) {
	inv, err := s.repo.FindByMemo(ctx, memoNo)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &apperr.NotFoundError{Resource: "invoice", Key: memoNo}
	}
	return inv, nil
}

// NextMemo previews the memo number the next new invoice would get. A
// missing credential or table counts as no invoices; any other failure is
// returned rather than guessed around.
func (s *Service) NextMemo(ctx context.Context) (string, error) {
	memos, err := s.repo.MemoNumbers(ctx)
	if err != nil {
		return "", err
	}
	return memo.Next(memos), nil
}

func (s *Service) validate(inv *Invoice) error {
	var problems []string
	if strings.TrimSpace(inv.TripsMemoNo) == "" {
		problems = append(problems, "trips_memo_no is required")
	}
	if strings.TrimSpace(inv.CustomerName) == "" {
		problems = append(problems, "customer_name is required")
	}
	if inv.EndKM.LessThan(inv.StartKM) {
		problems = append(problems, "end_km must not be less than start_km")
	}
	amounts := []struct {
		name  string
		value money.Amount
	}{
		{"start_km", inv.StartKM},
		{"end_km", inv.EndKM},
		{"total_km", inv.TotalKM},
		{"total_hours", inv.TotalHours},
		{"min_charges", inv.MinCharges},
		{"additional_hour_charges", inv.AdditionalHourCharges},
		{"additional_km_charges", inv.AdditionalKMCharges},
		{"driver_allowance", inv.DriverAllowance},
		{"toll_parking", inv.TollParking},
		{"total_amount", inv.TotalAmount},
	}
	for _, a := range amounts {
		if !a.value.Valid() {
			problems = append(problems, a.name+" must be a number")
		}
	}
	if len(problems) > 0 {
		return &apperr.ValidationError{Problems: problems}
	}
	return nil
}

// Create saves a new invoice, numbering it first when TripsMemoNo is empty.
func (s *Service) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	if strings.TrimSpace(inv.TripsMemoNo) == "" {
		next, err := s.NextMemo(ctx)
		if err != nil {
			return nil, err
		}
		inv.TripsMemoNo = next
	}
	if err := s.validate(inv); err != nil {
		return nil, err
	}

	memoNo, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, memoNo)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if err := s.validate(inv); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, inv)
	return err
}

func (s *Service) Delete(ctx context.Context, memoNo string) error {
	return s.repo.Delete(ctx, memoNo)
}
