package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (11 columns).
var columns = []string{
	"Line",
	"Description",
	"HSN Code",
	"Quantity",
	"Rate",
	"GST Rate",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total",
}

// Writer wraps csv.Writer for exporting bill calculations as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 11-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBill writes one row per line followed by the discount and total rows.
func (w *Writer) WriteBill(calc *domain.BillCalculation) error {
	for i := range calc.Lines {
		if err := w.csv.Write(lineToRow(i+1, &calc.Lines[i])); err != nil {
			return err
		}
	}

	t := calc.Totals
	trailer := [][]string{
		summaryRow("Subtotal", t.Subtotal, decimal.Zero, decimal.Zero, decimal.Zero, t.Subtotal),
		summaryRow("Discount", t.DiscountAmount.Neg(), decimal.Zero, decimal.Zero, decimal.Zero, t.DiscountAmount.Neg()),
		summaryRow("Total", t.Subtotal.Sub(t.DiscountAmount), t.CGST, t.SGST, t.IGST, t.TotalAmount),
	}
	for _, row := range trailer {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func lineToRow(n int, line *domain.BillLine) []string {
	row := make([]string, len(columns))
	row[0] = strconv.Itoa(n)
	row[1] = line.Description
	row[2] = line.HSNCode
	row[3] = line.Quantity.String()
	row[4] = formatMoney(line.Rate)
	row[5] = line.RatePercent.String()
	row[6] = formatMoney(line.BaseAmount)
	row[7] = formatMoney(line.Tax.CGST)
	row[8] = formatMoney(line.Tax.SGST)
	row[9] = formatMoney(line.Tax.IGST)
	row[10] = formatMoney(line.TotalAmount)
	return row
}

func summaryRow(label string, taxable, cgst, sgst, igst, total decimal.Decimal) []string {
	row := make([]string, len(columns))
	row[1] = label
	row[6] = formatMoney(taxable)
	row[7] = formatMoney(cgst)
	row[8] = formatMoney(sgst)
	row[9] = formatMoney(igst)
	row[10] = formatMoney(total)
	return row
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition and object keys.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename with the given extension.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "bill"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), ext)
}
