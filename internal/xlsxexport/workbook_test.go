package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/xlsxexport"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func interStateBill() *domain.BillCalculation {
	items := []gst.LineItemCalculation{
		gst.ComputeLineItem(dec("3"), dec("100"), dec("12"), "27", "29"),
		gst.ComputeLineItem(dec("1"), dec("250"), dec("18"), "27", "29"),
	}
	totals := gst.AggregateBillTotals(items, gst.AmountDiscount(dec("50")))
	return &domain.BillCalculation{
		SellerStateCode: "27",
		SellerStateName: "Maharashtra",
		BuyerStateCode:  "29",
		BuyerStateName:  "Karnataka",
		InterState:      true,
		Lines: []domain.BillLine{
			{Description: "Bolts", HSNCode: "7318", LineItemCalculation: items[0]},
			{Description: "Drill bit", LineItemCalculation: items[1]},
		},
		Totals:        totals,
		RateSummary:   gst.SummarizeByRate(items),
		AmountInWords: gst.AmountInWords(totals.TotalAmount),
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBuild_Sheets(t *testing.T) {
	data, err := xlsxexport.Build(interStateBill())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{xlsxexport.BillSheet, xlsxexport.SummarySheet}, f.GetSheetList())
}

func TestBuild_BillSheet(t *testing.T) {
	data, err := xlsxexport.Build(interStateBill())
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(xlsxexport.BillSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Seller State", "Maharashtra (27)"}, rows[0])
	assert.Equal(t, []string{"Buyer State", "Karnataka (29)"}, rows[1])
	assert.Equal(t, []string{"Supply", "Inter-state"}, rows[2])

	header := rows[4]
	assert.Equal(t, "Description", header[1])
	assert.Equal(t, "Total", header[10])

	first := rows[5]
	assert.Equal(t, "Bolts", first[1])
	assert.Equal(t, "7318", first[2])
	assert.Equal(t, "300", first[6])
	assert.Equal(t, "0", first[7])
	assert.Equal(t, "36", first[9])
	assert.Equal(t, "336", first[10])

	total, err := f.GetCellValue(xlsxexport.BillSheet, "K14", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "581", total)

	label, err := f.GetCellValue(xlsxexport.BillSheet, "B14")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	payable, err := f.GetCellValue(xlsxexport.BillSheet, "C15")
	require.NoError(t, err)
	assert.Equal(t, "₹ 581.00", payable)

	words, err := f.GetCellValue(xlsxexport.BillSheet, "C16")
	require.NoError(t, err)
	assert.Equal(t, "Rupees Five Hundred Eighty One Only", words)
}

func TestBuild_SummarySheet(t *testing.T) {
	data, err := xlsxexport.Build(interStateBill())
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(xlsxexport.SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"12", "300", "0", "0", "36", "36", "336"}, rows[1])
	assert.Equal(t, []string{"18", "250", "0", "0", "45", "45", "295"}, rows[2])
}

func TestBuild_AmountPayableGrouped(t *testing.T) {
	items := []gst.LineItemCalculation{gst.ComputeLineItem(dec("10"), dec("1000"), dec("18"), "27", "27")}
	totals := gst.AggregateBillTotals(items, gst.NoDiscount())
	data, err := xlsxexport.Build(&domain.BillCalculation{
		SellerStateCode: "27",
		BuyerStateCode:  "27",
		Lines:           []domain.BillLine{{Description: "Sheets", LineItemCalculation: items[0]}},
		Totals:          totals,
	})
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(xlsxexport.BillSheet)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	require.Len(t, last, 3)
	assert.Equal(t, "Amount payable", last[1])
	assert.Equal(t, "₹ 11,800.00", last[2])
}

func TestBuild_EmptyBill(t *testing.T) {
	data, err := xlsxexport.Build(&domain.BillCalculation{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
