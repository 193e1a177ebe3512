package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/config"
	"github.com/sbtransport/sbtconsole/internal/money"
	"github.com/sbtransport/sbtconsole/internal/pricing"
)

func sedanRules() pricing.Rules {
	return pricing.Rules{
		VehicleTypes: []string{"Sedan"},
		Brands: []pricing.BrandRule{
			{Brand: "Transport"},
			{Brand: "VIKING", ZeroDriverAllowance: true, ExemptLocations: []string{"Chennai"}},
		},
	}
}

func calc(key string, allowance int64) calculation.Calculation {
	return calculation.Calculation{
		ProductsTypeCategory:  key,
		MinHours:              money.NewFromInt(8),
		MinKM:                 money.NewFromInt(80),
		MinCharges:            money.NewFromInt(1500),
		AdditionalHourCharges: money.NewFromInt(150),
		RunningHours:          money.NewFromInt(10),
		DriverAllowance:       money.NewFromInt(allowance),
	}
}

func TestGenerateMatchesExactKey(t *testing.T) {
	areas := []area.Area{{Location: "L", LocationCategory: "C"}}
	calcs := []calculation.Calculation{calc("Transport_Sedan_C", 300)}

	rows := pricing.Generate(areas, calcs, sedanRules())

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "L", row.Area)
	assert.Equal(t, "C", row.Category)
	assert.Equal(t, "Transport - Sedan", row.Label)
	assert.Equal(t, "Transport_C_L_Sedan", row.ProductItem)
	assert.Equal(t, "Sedan", row.VehicleType)
	assert.Equal(t, "300", row.DriverAllowance)
	assert.True(t, row.MinCharges.Equal(money.NewFromInt(1500)))
}

func TestGenerateNoFuzzyMatching(t *testing.T) {
	areas := []area.Area{{Location: "L", LocationCategory: "C"}}
	calcs := []calculation.Calculation{
		calc("transport_Sedan_C", 1),
		calc("Transport_Sedan_C ", 1),
		calc("Transport_Sedan", 1),
	}

	assert.Empty(t, pricing.Generate(areas, calcs, sedanRules()))
}

func TestGenerateDriverAllowanceOverride(t *testing.T) {
	calcs := []calculation.Calculation{calc("VIKING_Sedan_C", 500)}

	tests := []struct {
		location string
		want     string
	}{
		{"Vellore", "0"},
		{"Chennai", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			areas := []area.Area{{Location: tt.location, LocationCategory: "C"}}
			rows := pricing.Generate(areas, calcs, sedanRules())
			require.Len(t, rows, 1)
			assert.Equal(t, "VIKING - Sedan", rows[0].Label)
			assert.Equal(t, tt.want, rows[0].DriverAllowance)
		})
	}
}

func TestGenerateKeepsStoredAllowanceText(t *testing.T) {
	c := calc("VIKING_Sedan_C", 0)
	c.DriverAllowance = money.RequireFromString("500.00")
	areas := []area.Area{
		{Location: "Chennai", LocationCategory: "C"},
		{Location: "Vellore", LocationCategory: "C"},
	}

	rows := pricing.Generate(areas, []calculation.Calculation{c}, sedanRules())

	require.Len(t, rows, 2)
	assert.Equal(t, "500.00", rows[0].DriverAllowance)
	assert.Equal(t, "0", rows[1].DriverAllowance)
}

func TestGenerateOrdering(t *testing.T) {
	rules := pricing.Rules{
		VehicleTypes: []string{"Sedan", "SUV"},
		Brands:       []pricing.BrandRule{{Brand: "Transport"}, {Brand: "VIKING"}},
	}
	areas := []area.Area{
		{Location: "Vellore", LocationCategory: "M"},
		{Location: "Chennai", LocationCategory: "L"},
	}
	var calcs []calculation.Calculation
	for _, key := range []string{
		"VIKING_SUV_L", "Transport_SUV_L", "VIKING_Sedan_L", "Transport_Sedan_L",
		"Transport_Sedan_M", "VIKING_SUV_M",
	} {
		calcs = append(calcs, calc(key, 100))
	}

	rows := pricing.Generate(areas, calcs, rules)

	var got []string
	for _, r := range rows {
		got = append(got, r.ProductItem)
	}
	assert.Equal(t, []string{
		"Transport_M_Vellore_Sedan",
		"VIKING_M_Vellore_SUV",
		"Transport_L_Chennai_Sedan",
		"VIKING_L_Chennai_Sedan",
		"Transport_L_Chennai_SUV",
		"VIKING_L_Chennai_SUV",
	}, got)
}

func TestProductItemReplacesSpaces(t *testing.T) {
	rules := pricing.Rules{
		VehicleTypes: []string{"Tempo Traveller"},
		Brands:       []pricing.BrandRule{{Brand: "Transport"}},
	}
	areas := []area.Area{{Location: "Mount Road", LocationCategory: "L"}}
	calcs := []calculation.Calculation{calc("Transport_Tempo Traveller_L", 0)}

	rows := pricing.Generate(areas, calcs, rules)
	require.Len(t, rows, 1)
	assert.Equal(t, "Transport_L_Mount_Road_Tempo_Traveller", rows[0].ProductItem)
	assert.Equal(t, "Transport - Tempo Traveller", rows[0].Label)
}

func TestGenerateEmptyInputs(t *testing.T) {
	rows := pricing.Generate(nil, nil, pricing.DefaultRules())
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRulesFromConfig(t *testing.T) {
	t.Run("empty config keeps defaults", func(t *testing.T) {
		assert.Equal(t, pricing.DefaultRules(), pricing.RulesFromConfig(config.PricingConfig{}))
	})

	t.Run("configured brands replace defaults", func(t *testing.T) {
		rules := pricing.RulesFromConfig(config.PricingConfig{
			Brands: []config.BrandConfig{{Brand: "Express", ZeroDriverAllowance: true}},
		})
		assert.Equal(t, pricing.DefaultRules().VehicleTypes, rules.VehicleTypes)
		require.Len(t, rules.Brands, 1)
		assert.Equal(t, "Express", rules.Brands[0].Brand)
		assert.True(t, rules.Brands[0].ZeroDriverAllowance)
	})
}
