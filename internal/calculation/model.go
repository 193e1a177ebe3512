package calculation

import "github.com/sbtransport/sbtconsole/internal/money"

// Calculation is one pricing rule. ProductsTypeCategory is its logical key,
// built as brand_vehicleType_locationCategory.
type Calculation struct {
	ID                    int64        `json:"id,omitempty"`
	ProductsTypeCategory  string       `json:"products_type_category"`
	MinHours              money.Amount `json:"min_hours"`
	MinKM                 money.Amount `json:"min_km"`
	MinCharges            money.Amount `json:"min_charges"`
	AdditionalHourCharges money.Amount `json:"additional_hour_charges"`
	RunningHours          money.Amount `json:"running_hours"`
	DriverAllowance       money.Amount `json:"driver_allowance"`
}

// Key returns the products_type_category a calculation must carry to price
// the given brand, vehicle type and location category.
func Key(brand, vehicleType, locationCategory string) string {
	return brand + "_" + vehicleType + "_" + locationCategory
}
