package pricing

import (
	"strings"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/money"
)

// ServiceRow is one priced service: a brand and vehicle type offered in an area.
type ServiceRow struct {
	Area                  string       `json:"area"`
	Category              string       `json:"category"`
	Label                 string       `json:"label"`
	ProductItem           string       `json:"product_item"`
	MinHours              money.Amount `json:"min_hours"`
	MinKM                 money.Amount `json:"min_km"`
	MinCharges            money.Amount `json:"min_charges"`
	AdditionalHourCharges money.Amount `json:"additional_hour_charges"`
	RunningHours          money.Amount `json:"running_hours"`
	DriverAllowance       string       `json:"driver_allowance"`
	VehicleType           string       `json:"vehicle_type"`
}

// Generate cross-joins areas, vehicle types and brands against calcs. A
// combination produces a row only when a calculation's key equals
// calculation.Key(brand, vehicleType, area.LocationCategory) exactly. Rows
// come out with areas as the outer loop, then vehicle types, then brands.
func Generate(areas []area.Area, calcs []calculation.Calculation, rules Rules) []ServiceRow {
	byKey := make(map[string]calculation.Calculation, len(calcs))
	for _, c := range calcs {
		// first row wins on duplicate keys
		if _, dup := byKey[c.ProductsTypeCategory]; !dup {
			byKey[c.ProductsTypeCategory] = c
		}
	}

	rows := make([]ServiceRow, 0)
	for _, a := range areas {
		for _, vt := range rules.VehicleTypes {
			for _, brand := range rules.Brands {
				calc, ok := byKey[calculation.Key(brand.Brand, vt, a.LocationCategory)]
				if !ok {
					continue
				}

				allowance := calc.DriverAllowance.String()
				if brand.zeroesAllowanceAt(a.Location) {
					allowance = "0"
				}

				rows = append(rows, ServiceRow{
					Area:                  a.Location,
					Category:              a.LocationCategory,
					Label:                 brand.Brand + " - " + vt,
					ProductItem:           productItem(brand.Brand, a.LocationCategory, a.Location, vt),
					MinHours:              calc.MinHours,
					MinKM:                 calc.MinKM,
					MinCharges:            calc.MinCharges,
					AdditionalHourCharges: calc.AdditionalHourCharges,
					RunningHours:          calc.RunningHours,
					DriverAllowance:       allowance,
					VehicleType:           vt,
				})
			}
		}
	}
	return rows
}

func productItem(brand, category, location, vehicleType string) string {
	item := strings.Join([]string{brand, category, location, vehicleType}, "_")
	return strings.ReplaceAll(item, " ", "_")
}
