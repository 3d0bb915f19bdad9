// Package xlsxexport renders bill calculations as Excel workbooks.
package xlsxexport

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

const (
	BillSheet    = "Bill"
	SummarySheet = "GST Summary"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	moneyFormat = 2 // 0.00
)

var lineHeader = []interface{}{
	"#", "Description", "HSN Code", "Quantity", "Rate", "GST %",
	"Taxable Amount", "CGST", "SGST", "IGST", "Total",
}

var summaryHeader = []interface{}{
	"GST %", "Taxable Amount", "CGST", "SGST", "IGST", "Total GST", "Total",
}

// Build renders calc into an xlsx workbook with a bill sheet and a per-rate
// summary sheet.
func Build(calc *domain.BillCalculation) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", BillSheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: add summary sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeBillSheet(f, styles, calc); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, styles, calc); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: write: %w", err)
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	header int
	money  int
	total  int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	}); err != nil {
		return s, fmt.Errorf("xlsxexport: header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyFormat}); err != nil {
		return s, fmt.Errorf("xlsxexport: money style: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{NumFmt: moneyFormat, Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("xlsxexport: total style: %w", err)
	}
	return s, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("xlsxexport: %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeBillSheet(f *excelize.File, styles styleSet, calc *domain.BillCalculation) error {
	supply := "Intra-state"
	if calc.InterState {
		supply = "Inter-state"
	}
	meta := [][]interface{}{
		{"Seller State", fmt.Sprintf("%s (%s)", calc.SellerStateName, calc.SellerStateCode)},
		{"Buyer State", fmt.Sprintf("%s (%s)", calc.BuyerStateName, calc.BuyerStateCode)},
		{"Supply", supply},
	}
	for i, values := range meta {
		if err := writeRow(f, BillSheet, i+1, values); err != nil {
			return err
		}
	}

	headerRow := len(meta) + 2
	if err := writeRow(f, BillSheet, headerRow, lineHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(BillSheet, cell(1, headerRow), cell(len(lineHeader), headerRow), styles.header); err != nil {
		return fmt.Errorf("xlsxexport: style header: %w", err)
	}

	row := headerRow + 1
	for i := range calc.Lines {
		line := &calc.Lines[i]
		values := []interface{}{
			i + 1,
			line.Description,
			line.HSNCode,
			line.Quantity.InexactFloat64(),
			money(line.Rate),
			line.RatePercent.InexactFloat64(),
			money(line.BaseAmount),
			money(line.Tax.CGST),
			money(line.Tax.SGST),
			money(line.Tax.IGST),
			money(line.TotalAmount),
		}
		if err := writeRow(f, BillSheet, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(BillSheet, cell(5, row), cell(len(lineHeader), row), styles.money); err != nil {
			return fmt.Errorf("xlsxexport: style line: %w", err)
		}
		row++
	}

	t := calc.Totals
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", t.Subtotal},
		{"Discount", t.DiscountAmount},
		{"CGST", t.CGST},
		{"SGST", t.SGST},
		{"IGST", t.IGST},
		{"Total", t.TotalAmount},
	}
	row++
	for _, tot := range totals {
		if err := writeRow(f, BillSheet, row, []interface{}{nil, tot.label, nil, nil, nil, nil, nil, nil, nil, nil, money(tot.value)}); err != nil {
			return err
		}
		style := styles.money
		if tot.label == "Total" {
			style = styles.total
		}
		if err := f.SetCellStyle(BillSheet, cell(11, row), cell(11, row), style); err != nil {
			return fmt.Errorf("xlsxexport: style total: %w", err)
		}
		row++
	}
	payable := gst.FormatRupee(t.TotalAmount, gst.RupeeFormat{SpaceAfterSymbol: true, Grouping: true})
	if err := writeRow(f, BillSheet, row, []interface{}{nil, "Amount payable", payable}); err != nil {
		return err
	}
	row++
	if calc.AmountInWords != "" {
		if err := writeRow(f, BillSheet, row, []interface{}{nil, "Amount in words", "Rupees " + calc.AmountInWords + " Only"}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(BillSheet, "B", "B", 32); err != nil {
		return fmt.Errorf("xlsxexport: column width: %w", err)
	}
	return f.SetColWidth(BillSheet, "D", "K", 14)
}

func writeSummarySheet(f *excelize.File, styles styleSet, calc *domain.BillCalculation) error {
	if err := writeRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, cell(1, 1), cell(len(summaryHeader), 1), styles.header); err != nil {
		return fmt.Errorf("xlsxexport: style summary header: %w", err)
	}
	for i, s := range calc.RateSummary {
		row := i + 2
		values := []interface{}{
			s.RatePercent.InexactFloat64(),
			money(s.BaseAmount),
			money(s.CGST),
			money(s.SGST),
			money(s.IGST),
			money(s.TotalTax),
			money(s.TotalAmount),
		}
		if err := writeRow(f, SummarySheet, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell(2, row), cell(len(summaryHeader), row), styles.money); err != nil {
			return fmt.Errorf("xlsxexport: style summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "G", 16)
}
