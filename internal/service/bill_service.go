package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstbill/internal/csvexport"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
	"gstbill/internal/xlsxexport"
)

var maxGSTRate = decimal.NewFromInt(100)

// BillItemInput is one line of a bill to calculate.
type BillItemInput struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// CalculateBillInput is the DTO for a bill calculation. BuyerStateCode, when
// set, overrides the customer's state.
type CalculateBillInput struct {
	CustomerID     *int64          `json:"customer_id"`
	BuyerStateCode *string         `json:"buyer_state_code"`
	Items          []BillItemInput `json:"items" binding:"required"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

// ExportBillInput is the DTO for exporting a calculated bill.
type ExportBillInput struct {
	CalculateBillInput
	Format string `json:"format"`
	Name   string `json:"name"`
}

// ExportResult holds a rendered export. URL is set when the export was archived.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Key         string `json:"key,omitempty"`
	URL         string `json:"url,omitempty"`
	Data        []byte `json:"-"`
}

// BillServiceConfig holds bill calculation settings.
type BillServiceConfig struct {
	DefaultStateCode string
	PresignExpiry    time.Duration
}

// BillService defines the bill calculation contract.
type BillService interface {
	Calculate(ctx context.Context, input CalculateBillInput) (*domain.BillCalculation, error)
	Export(ctx context.Context, input ExportBillInput) (*ExportResult, error)
}

type billService struct {
	companies port.CompanyRepository
	customers port.CustomerRepository
	archive   port.ExportArchive
	logger    *zap.Logger
	cfg       BillServiceConfig
	now       func() time.Time
}

// NewBillService creates a new BillService implementation. archive may be nil,
// in which case exports are returned inline only.
func NewBillService(
	companies port.CompanyRepository,
	customers port.CustomerRepository,
	archive port.ExportArchive,
	logger *zap.Logger,
	cfg BillServiceConfig,
) BillService {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = time.Hour
	}
	return &billService{
		companies: companies,
		customers: customers,
		archive:   archive,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func invalidBill(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidBillInput, fmt.Sprintf(format, args...))
}

func (s *billService) Calculate(ctx context.Context, input CalculateBillInput) (*domain.BillCalculation, error) {
	policy, err := validateBillInput(input)
	if err != nil {
		return nil, err
	}

	sellerState, err := s.sellerState(ctx)
	if err != nil {
		return nil, err
	}
	buyerState, err := s.buyerState(ctx, input, sellerState)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.BillLine, len(input.Items))
	items := make([]gst.LineItemCalculation, len(input.Items))
	for i, it := range input.Items {
		items[i] = gst.ComputeLineItem(it.Quantity, it.Rate, it.GSTRate, sellerState, buyerState)
		lines[i] = domain.BillLine{
			Description:         strings.TrimSpace(it.Description),
			HSNCode:             strings.TrimSpace(it.HSNCode),
			LineItemCalculation: items[i],
		}
	}
	totals := gst.AggregateBillTotals(items, policy)

	return &domain.BillCalculation{
		SellerStateCode: sellerState,
		SellerStateName: gst.StateName(sellerState),
		BuyerStateCode:  buyerState,
		BuyerStateName:  gst.StateName(buyerState),
		InterState:      sellerState != buyerState,
		Discount:        policy,
		Lines:           lines,
		Totals:          totals,
		TotalTax:        totals.TotalTax(),
		RateSummary:     gst.SummarizeByRate(items),
		AmountInWords:   gst.AmountInWords(totals.TotalAmount),
		CalculatedAt:    s.now(),
	}, nil
}

func validateBillInput(input CalculateBillInput) (gst.DiscountPolicy, error) {
	if len(input.Items) == 0 {
		return gst.DiscountPolicy{}, invalidBill("at least one item is required")
	}
	for i, it := range input.Items {
		switch {
		case it.Quantity.IsNegative():
			return gst.DiscountPolicy{}, invalidBill("items[%d]: quantity must not be negative", i)
		case it.Rate.IsNegative():
			return gst.DiscountPolicy{}, invalidBill("items[%d]: rate must not be negative", i)
		case it.GSTRate.IsNegative() || it.GSTRate.GreaterThan(maxGSTRate):
			return gst.DiscountPolicy{}, invalidBill("items[%d]: gst rate must be between 0 and 100", i)
		case it.HSNCode != "" && !gst.ValidHSNCode(strings.TrimSpace(it.HSNCode)):
			return gst.DiscountPolicy{}, invalidBill("items[%d]: hsn code must be 4 to 8 digits", i)
		}
	}

	dt, err := gst.ParseDiscountType(input.DiscountType)
	if err != nil {
		return gst.DiscountPolicy{}, invalidBill("%v", err)
	}
	if input.DiscountValue.IsNegative() {
		return gst.DiscountPolicy{}, invalidBill("discount value must not be negative")
	}
	switch dt {
	case gst.DiscountPercentage:
		if input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return gst.DiscountPolicy{}, invalidBill("discount percentage must not exceed 100")
		}
		return gst.PercentageDiscount(input.DiscountValue), nil
	case gst.DiscountAmount:
		return gst.AmountDiscount(input.DiscountValue), nil
	default:
		return gst.NoDiscount(), nil
	}
}

func (s *billService) sellerState(ctx context.Context) (string, error) {
	company, err := s.companies.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.cfg.DefaultStateCode, nil
		}
		return "", err
	}
	if code := strings.TrimSpace(company.StateCode); code != "" {
		return code, nil
	}
	return s.cfg.DefaultStateCode, nil
}

func (s *billService) buyerState(ctx context.Context, input CalculateBillInput, sellerState string) (string, error) {
	if input.BuyerStateCode != nil {
		if code := strings.TrimSpace(*input.BuyerStateCode); code != "" {
			if !gst.IsKnownStateCode(code) {
				return "", invalidBill("unknown buyer state code %q", code)
			}
			return code, nil
		}
	}
	if input.CustomerID == nil {
		return sellerState, nil
	}

	customer, err := s.customers.GetByID(ctx, *input.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", invalidBill("customer %d not found", *input.CustomerID)
		}
		return "", err
	}
	if customer.StateCode != nil {
		if code := strings.TrimSpace(*customer.StateCode); code != "" {
			return code, nil
		}
	}
	// Guests and customers without a recorded state are billed intra-state.
	return sellerState, nil
}

func (s *billService) Export(ctx context.Context, input ExportBillInput) (*ExportResult, error) {
	calc, err := s.Calculate(ctx, input.CalculateBillInput)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch strings.ToLower(strings.TrimSpace(input.Format)) {
	case "", "xlsx":
		ext, contentType = "xlsx", xlsxexport.ContentType
		data, err = xlsxexport.Build(calc)
	case "csv":
		ext, contentType = "csv", "text/csv; charset=utf-8"
		data, err = renderCSV(calc)
	default:
		return nil, invalidBill("unsupported export format %q", input.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("billService.Export: %w", err)
	}

	name := input.Name
	if name == "" {
		name = "bill"
	}
	result := &ExportResult{
		Filename:    csvexport.BuildFilename(name, ext, calc.CalculatedAt),
		ContentType: contentType,
		Data:        data,
	}
	if s.archive == nil {
		return result, nil
	}

	key := fmt.Sprintf("exports/%s/%s.%s", calc.CalculatedAt.Format("2006/01/02"), uuid.New(), ext)
	obj, err := s.archive.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("billService.Export: %w", err)
	}
	url, err := s.archive.PresignGet(ctx, obj.Key, result.Filename, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("billService.Export: %w", err)
	}
	result.Key = obj.Key
	result.URL = url

	s.logger.Info("bill export archived",
		zap.String("key", obj.Key),
		zap.String("format", ext),
		zap.Int("bytes", len(data)))
	return result, nil
}

func renderCSV(calc *domain.BillCalculation) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteBill(calc); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
