package admin

import (
	"github.com/sbtransport/sbtconsole/internal/bundle"
	"github.com/sbtransport/sbtconsole/internal/money"
)

// -------------------------
// Table DTOs
// -------------------------

type CustomerRequest struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
}

type AreaRequest struct {
	Location         string `json:"location"`
	LocationCategory string `json:"location_category"`
}

type CalculationRequest struct {
	ProductsTypeCategory  string       `json:"products_type_category"`
	MinHours              money.Amount `json:"min_hours"`
	MinKM                 money.Amount `json:"min_km"`
	MinCharges            money.Amount `json:"min_charges"`
	AdditionalHourCharges money.Amount `json:"additional_hour_charges"`
	RunningHours          money.Amount `json:"running_hours"`
	DriverAllowance       money.Amount `json:"driver_allowance"`
}

type LookupRequest struct {
	LookupKey   string `json:"lookup_key"`
	LookupValue string `json:"lookup_value"`
}

// Invoices bind straight to invoice.Invoice.

// -------------------------
// Console DTOs
// -------------------------

type NextMemoResponse struct {
	MemoNo string `json:"trips_memo_no"`
}

type ImportResponse struct {
	Tables []bundle.TableResult `json:"tables"`
}

type TableStatusResponse struct {
	Table  string `json:"table"`
	Status string `json:"status"`
}

type CredentialRequest struct {
	AccessKey string `json:"access_key"`
}

type CredentialResponse struct {
	Configured      bool   `json:"configured"`
	Source          string `json:"source,omitempty"`
	RestartRequired bool   `json:"restart_required,omitempty"`
}

type BackupListResponse struct {
	Backups []string `json:"backups"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
	Table    string   `json:"table,omitempty"`
	Imported []string `json:"imported,omitempty"`
}
