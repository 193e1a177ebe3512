package pricing

import (
	"slices"

	"github.com/sbtransport/sbtconsole/internal/config"
)

// Rules enumerates the vehicle types and brands the price list is built from.
// Brands are applied in order, so the order here is the row order within a
// vehicle type.
type Rules struct {
	VehicleTypes []string
	Brands       []BrandRule
}

// BrandRule describes one brand. A brand with ZeroDriverAllowance prices the
// driver allowance at zero everywhere except the ExemptLocations.
type BrandRule struct {
	Brand               string
	ZeroDriverAllowance bool
	ExemptLocations     []string
}

// DefaultRules are the business rules used when the config has none.
func DefaultRules() Rules {
	return Rules{
		VehicleTypes: []string{"Sedan", "SUV", "Innova", "Tempo Traveller"},
		Brands: []BrandRule{
			{Brand: "Transport"},
			{Brand: "VIKING", ZeroDriverAllowance: true, ExemptLocations: []string{"Chennai"}},
		},
	}
}

// RulesFromConfig overlays the configured rule table on DefaultRules. Each
// list replaces its default only when it is non-empty.
func RulesFromConfig(cfg config.PricingConfig) Rules {
	rules := DefaultRules()
	if len(cfg.VehicleTypes) > 0 {
		rules.VehicleTypes = slices.Clone(cfg.VehicleTypes)
	}
	if len(cfg.Brands) > 0 {
		rules.Brands = make([]BrandRule, 0, len(cfg.Brands))
		for _, b := range cfg.Brands {
			rules.Brands = append(rules.Brands, BrandRule{
				Brand:               b.Brand,
				ZeroDriverAllowance: b.ZeroDriverAllowance,
				ExemptLocations:     slices.Clone(b.ExemptLocations),
			})
		}
	}
	return rules
}

func (b BrandRule) zeroesAllowanceAt(location string) bool {
	return b.ZeroDriverAllowance && !slices.Contains(b.ExemptLocations, location)
}
