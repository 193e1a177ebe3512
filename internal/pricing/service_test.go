package pricing_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/money"
	"github.com/sbtransport/sbtconsole/internal/pricing"
	"github.com/sbtransport/sbtconsole/internal/testutil"
)

func TestServicesFromBackend(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeBackend(t, "key", area.Table, calculation.Table)
	fake.Seed(area.Table,
		map[string]any{"location": "Chennai", "location_category": "L"},
		map[string]any{"location": "Vellore", "location_category": "L"},
	)
	fake.Seed(calculation.Table,
		map[string]any{"products_type_category": "VIKING_Sedan_L", "min_charges": "1800", "driver_allowance": "500"},
	)

	db := backend.New(backend.Options{URL: fake.URL, AccessKey: "key"})
	svc := pricing.NewService(area.NewService(db), calculation.NewService(db), pricing.DefaultRules())

	rows, err := svc.Services(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "500", rows[0].DriverAllowance)
	assert.Equal(t, "0", rows[1].DriverAllowance)
}

func TestServicesToleratesBlankCells(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeBackend(t, "key", area.Table, calculation.Table)
	fake.Seed(area.Table, map[string]any{"location": "Chennai", "location_category": "L"})
	fake.Seed(calculation.Table,
		map[string]any{"products_type_category": "Transport_Sedan_L", "driver_allowance": "", "min_km": nil},
		map[string]any{"products_type_category": "VIKING_Sedan_L", "driver_allowance": "500.50"},
	)

	db := backend.New(backend.Options{URL: fake.URL, AccessKey: "key"})
	svc := pricing.NewService(area.NewService(db), calculation.NewService(db), pricing.DefaultRules())

	rows, err := svc.Services(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[0].DriverAllowance)
	assert.True(t, rows[0].MinKM.Equal(money.NewFromInt(0)))
	assert.Equal(t, "500.50", rows[1].DriverAllowance)

	var buf bytes.Buffer
	require.NoError(t, pricing.WritePriceList(&buf, rows))
}

func TestServicesWithoutCredentialIsEmpty(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeBackend(t, "key", area.Table, calculation.Table)
	db := backend.New(backend.Options{URL: fake.URL})
	svc := pricing.NewService(area.NewService(db), calculation.NewService(db), pricing.DefaultRules())

	rows, err := svc.Services(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, fake.Requests())
}

func TestWritePriceList(t *testing.T) {
	areas := []area.Area{{Location: "Chennai", LocationCategory: "L"}}
	calcs := []calculation.Calculation{calc("Transport_Sedan_L", 250)}
	rows := pricing.Generate(areas, calcs, sedanRules())

	var buf bytes.Buffer
	require.NoError(t, pricing.WritePriceList(&buf, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{pricing.SheetName}, f.GetSheetList())

	got, err := f.GetRows(pricing.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Area", got[0][0])
	assert.Equal(t, "Vehicle Type", got[0][10])
	assert.Equal(t, []string{
		"Chennai", "L", "Transport - Sedan", "Transport_L_Chennai_Sedan",
		"8", "80", "1500", "150", "10", "250", "Sedan",
	}, got[1])
}
