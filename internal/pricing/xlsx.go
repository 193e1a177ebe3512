package pricing

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Services"

var priceListHeader = []any{
	"Area", "Category", "Label", "Product Item",
	"Min Hours", "Min KM", "Min Charges", "Additional Hour Charges", "Running Hours",
	"Driver Allowance", "Vehicle Type",
}

// WritePriceList renders rows as an XLSX workbook with a single sheet.
func WritePriceList(w io.Writer, rows []ServiceRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &priceListHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Area, r.Category, r.Label, r.ProductItem,
			r.MinHours.InexactFloat64(),
			r.MinKM.InexactFloat64(),
			r.MinCharges.InexactFloat64(),
			r.AdditionalHourCharges.InexactFloat64(),
			r.RunningHours.InexactFloat64(),
			r.DriverAllowance,
			r.VehicleType,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "D", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "E", "K", 16); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
