package reporting

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// comparisonSheet is the workbook tab holding the ranked vendor matrix.
const comparisonSheet = "Comparison"

type xlsxReporter struct {
	path string
}

func (r *xlsxReporter) Write(payload any) error {
	comparison := comparisonOf(payload)
	if comparison == nil {
		return errors.New("xlsx reports can only render comparison results")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(comparisonSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{
		"Rank", "Vendor", "Nexus Trust Score", "Landed Cost (USD)",
		"Delivery (Days)", "Risk Level", "Brand Tier",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(comparisonSheet, cell, header)
		f.SetCellStyle(comparisonSheet, cell, cell, headerStyle)
	}

	for rowIdx, vendor := range comparison.RankedVendors {
		row := rowIdx + 2
		f.SetCellValue(comparisonSheet, fmt.Sprintf("A%d", row), vendor.Rank)
		f.SetCellValue(comparisonSheet, fmt.Sprintf("B%d", row), vendor.VendorName)
		f.SetCellValue(comparisonSheet, fmt.Sprintf("C%d", row), vendor.NexusTrustScore)
		f.SetCellValue(comparisonSheet, fmt.Sprintf("D%d", row), vendor.TotalLandedCost)
		f.SetCellValue(comparisonSheet, fmt.Sprintf("E%d", row), vendor.DeliveryDays)
		f.SetCellValue(comparisonSheet, fmt.Sprintf("F%d", row), string(vendor.RiskLevel))
		f.SetCellValue(comparisonSheet, fmt.Sprintf("G%d", row), vendor.BrandTier)
	}

	summaryRow := len(comparison.RankedVendors) + 3
	f.SetCellValue(comparisonSheet, fmt.Sprintf("A%d", summaryRow), "Recommended Vendor")
	f.SetCellValue(comparisonSheet, fmt.Sprintf("B%d", summaryRow), comparison.RecommendedVendor)
	f.SetCellValue(comparisonSheet, fmt.Sprintf("A%d", summaryRow+1), "Justification")
	f.SetCellValue(comparisonSheet, fmt.Sprintf("B%d", summaryRow+1), comparison.Justification)
	f.SetCellValue(comparisonSheet, fmt.Sprintf("A%d", summaryRow+2), "Savings vs Most Expensive")
	f.SetCellValue(comparisonSheet, fmt.Sprintf("B%d", summaryRow+2), comparison.Savings)

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 18.0
		if col == "B" {
			width = 32.0
		}
		f.SetColWidth(comparisonSheet, col, col, width)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("failed to save xlsx report: %w", err)
	}
	return nil
}

func (r *xlsxReporter) Close() error { return nil }

// comparisonOf unwraps the supported comparison payload shapes.
func comparisonOf(payload any) *schemas.ComparisonResult {
	switch v := payload.(type) {
	case *schemas.ComparisonResult:
		return v
	case schemas.ComparisonResult:
		return &v
	}
	return nil
}
