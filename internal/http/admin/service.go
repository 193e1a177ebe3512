package admin

import (
	"context"
	"strings"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/backup"
	"github.com/sbtransport/sbtconsole/internal/bundle"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/config"
	"github.com/sbtransport/sbtconsole/internal/customer"
	"github.com/sbtransport/sbtconsole/internal/invoice"
	"github.com/sbtransport/sbtconsole/internal/localstate"
	"github.com/sbtransport/sbtconsole/internal/lookup"
	"github.com/sbtransport/sbtconsole/internal/pricing"
)

// Deps are the services the admin API fronts.
type Deps struct {
	Backend      *backend.Client
	Credential   config.Credential
	State        *localstate.Store
	Customers    *customer.Service
	Areas        *area.Service
	Calculations *calculation.Service
	Lookups      *lookup.Service
	Invoices     *invoice.Service
	Pricing      *pricing.Service
	Bundle       *bundle.Service
	Backup       *backup.Service
}

type Service struct {
	Deps
}

func NewService(d Deps) *Service {
	return &Service{Deps: d}
}

// -------------------------
// Customers
// -------------------------

func (s *Service) GetCustomers(ctx context.Context) ([]customer.Customer, error) {
	return s.Customers.GetAll(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.Customers.Get(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, req *CustomerRequest) (*customer.Customer, error) {
	return s.Customers.Create(ctx, &customer.Customer{
		Name:     req.Name,
		Address1: req.Address1,
		Address2: req.Address2,
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req *CustomerRequest) error {
	return s.Customers.Update(ctx, &customer.Customer{
		ID:       id,
		Name:     req.Name,
		Address1: req.Address1,
		Address2: req.Address2,
	})
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.Customers.Delete(ctx, id)
}

// -------------------------
// Areas
// -------------------------

func (s *Service) GetAreas(ctx context.Context) ([]area.Area, error) {
	return s.Areas.GetAll(ctx)
}

func (s *Service) GetArea(ctx context.Context, id int64) (*area.Area, error) {
	return s.Areas.Get(ctx, id)
}

func (s *Service) CreateArea(ctx context.Context, req *AreaRequest) (*area.Area, error) {
	return s.Areas.Create(ctx, &area.Area{
		Location:         req.Location,
		LocationCategory: req.LocationCategory,
	})
}

func (s *Service) UpdateArea(ctx context.Context, id int64, req *AreaRequest) error {
	return s.Areas.Update(ctx, &area.Area{
		ID:               id,
		Location:         req.Location,
		LocationCategory: req.LocationCategory,
	})
}

func (s *Service) DeleteArea(ctx context.Context, id int64) error {
	return s.Areas.Delete(ctx, id)
}

// -------------------------
// Calculations
// -------------------------

func (s *Service) GetCalculations(ctx context.Context) ([]calculation.Calculation, error) {
	return s.Calculations.GetAll(ctx)
}

func (s *Service) GetCalculation(ctx context.Context, id int64) (*calculation.Calculation, error) {
	return s.Calculations.Get(ctx, id)
}

// GetCalculationByKey reports an absent key as NotFoundError.
func (s *Service) GetCalculationByKey(ctx context.Context, key string) (*calculation.Calculation, error) {
	calc, err := s.Calculations.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, &apperr.NotFoundError{Resource: "calculation", Key: key}
	}
	return calc, nil
}

func calculationFrom(id int64, req *CalculationRequest) *calculation.Calculation {
	return &calculation.Calculation{
		ID:                    id,
		ProductsTypeCategory:  req.ProductsTypeCategory,
		MinHours:              req.MinHours,
		MinKM:                 req.MinKM,
		MinCharges:            req.MinCharges,
		AdditionalHourCharges: req.AdditionalHourCharges,
		RunningHours:          req.RunningHours,
		DriverAllowance:       req.DriverAllowance,
	}
}

func (s *Service) CreateCalculation(ctx context.Context, req *CalculationRequest) (*calculation.Calculation, error) {
	return s.Calculations.Create(ctx, calculationFrom(0, req))
}

func (s *Service) UpdateCalculation(ctx context.Context, id int64, req *CalculationRequest) error {
	return s.Calculations.Update(ctx, calculationFrom(id, req))
}

func (s *Service) DeleteCalculation(ctx context.Context, id int64) error {
	return s.Calculations.Delete(ctx, id)
}

// -------------------------
// Lookup
// -------------------------

func (s *Service) GetLookups(ctx context.Context) ([]lookup.Lookup, error) {
	return s.Lookups.GetAll(ctx)
}

func (s *Service) GetLookup(ctx context.Context, id int64) (*lookup.Lookup, error) {
	return s.Lookups.Get(ctx, id)
}

func (s *Service) GetChoices(ctx context.Context, key string) ([]string, error) {
	return s.Lookups.Choices(ctx, key)
}

func (s *Service) CreateLookup(ctx context.Context, req *LookupRequest) (*lookup.Lookup, error) {
	return s.Lookups.Create(ctx, &lookup.Lookup{LookupKey: req.LookupKey, LookupValue: req.LookupValue})
}

func (s *Service) UpdateLookup(ctx context.Context, id int64, req *LookupRequest) error {
	return s.Lookups.Update(ctx, &lookup.Lookup{ID: id, LookupKey: req.LookupKey, LookupValue: req.LookupValue})
}

func (s *Service) DeleteLookup(ctx context.Context, id int64) error {
	return s.Lookups.Delete(ctx, id)
}

// -------------------------
// Invoices
// -------------------------

func (s *Service) GetInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	return s.Invoices.GetAll(ctx)
}

func (s *Service) GetInvoice(ctx context.Context, memoNo string) (*invoice.Invoice, error) {
	return s.Invoices.Get(ctx, memoNo)
}

func (s *Service) NextMemo(ctx context.Context) (*NextMemoResponse, error) {
	next, err := s.Invoices.NextMemo(ctx)
	if err != nil {
		return nil, err
	}
	return &NextMemoResponse{MemoNo: next}, nil
}

func (s *Service) CreateInvoice(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	return s.Invoices.Create(ctx, inv)
}

func (s *Service) UpdateInvoice(ctx context.Context, memoNo string, inv *invoice.Invoice) error {
	inv.TripsMemoNo = memoNo
	return s.Invoices.Update(ctx, inv)
}

func (s *Service) DeleteInvoice(ctx context.Context, memoNo string) error {
	return s.Invoices.Delete(ctx, memoNo)
}

// -------------------------
// Services price list
// -------------------------

func (s *Service) GetServices(ctx context.Context) ([]pricing.ServiceRow, error) {
	return s.Pricing.Services(ctx)
}

// -------------------------
// Import / export / backup
// -------------------------

func (s *Service) Export(ctx context.Context) (*bundle.Document, error) {
	return s.Bundle.Export(ctx)
}

func (s *Service) Import(ctx context.Context, raw []byte) (*ImportResponse, error) {
	results, err := s.Bundle.Import(ctx, raw)
	if results == nil {
		results = []bundle.TableResult{}
	}
	return &ImportResponse{Tables: results}, err
}

func (s *Service) CreateBackup(ctx context.Context) (*backup.BackupResult, error) {
	return s.Backup.CreateBackup(ctx)
}

func (s *Service) ListBackups() (*BackupListResponse, error) {
	names, err := s.Backup.List()
	if err != nil {
		return nil, err
	}
	return &BackupListResponse{Backups: names}, nil
}

func (s *Service) BackupPath(name string) (string, error) {
	return s.Backup.Path(name)
}

// -------------------------
// Backend status and credential
// -------------------------

func (s *Service) TableStatuses(ctx context.Context) ([]TableStatusResponse, error) {
	out := make([]TableStatusResponse, 0, len(bundle.Tables))
	for _, t := range bundle.Tables {
		status, err := s.Backend.TableStatus(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, TableStatusResponse{Table: t, Status: status.String()})
	}
	return out, nil
}

func (s *Service) CredentialStatus() *CredentialResponse {
	return &CredentialResponse{
		Configured: s.Backend.Configured(),
		Source:     s.Credential.Source,
	}
}

// SaveCredential persists key locally. The running process keeps the
// credential it started with.
func (s *Service) SaveCredential(ctx context.Context, req *CredentialRequest) (*CredentialResponse, error) {
	key := strings.TrimSpace(req.AccessKey)
	if key == "" {
		return nil, &apperr.ValidationError{Problems: []string{"access_key is required"}}
	}
	if err := s.State.SetAccessKey(ctx, key); err != nil {
		return nil, err
	}
	resp := s.CredentialStatus()
	resp.RestartRequired = true
	return resp, nil
}
