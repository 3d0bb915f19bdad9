package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newBillHandler() (*handler.BillHandler, *mocks.MockBillService) {
	mockSvc := new(mocks.MockBillService)
	return handler.NewBillHandler(mockSvc), mockSvc
}

const billBody = `{
	"customer_id": 12,
	"items": [{"description": "Widget", "quantity": "2", "rate": 250, "gst_rate": "18"}],
	"discount_type": "percentage",
	"discount_value": "5"
}`

func TestBillHandler_Calculate_Success(t *testing.T) {
	h, mockSvc := newBillHandler()

	calc := &domain.BillCalculation{
		SellerStateCode: "27",
		BuyerStateCode:  "27",
		Totals:          gst.BillTotals{TotalAmount: decimal.RequireFromString("565")},
		AmountInWords:   "Five Hundred Sixty Five",
	}
	mockSvc.On("Calculate", mock.Anything, mock.MatchedBy(func(in service.CalculateBillInput) bool {
		return in.CustomerID != nil && *in.CustomerID == 12 &&
			len(in.Items) == 1 &&
			in.Items[0].Rate.Equal(decimal.NewFromInt(250)) &&
			in.DiscountType == "percentage"
	})).Return(calc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/calculate", bytes.NewBufferString(billBody))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, 1, "user")

	h.Calculate(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "Five Hundred Sixty Five")
	mockSvc.AssertExpectations(t)
}

func TestBillHandler_Calculate_BadJSON(t *testing.T) {
	h, mockSvc := newBillHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/calculate", bytes.NewBufferString(`{"items":`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
}

func TestBillHandler_Calculate_InvalidInput(t *testing.T) {
	h, mockSvc := newBillHandler()
	mockSvc.On("Calculate", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: items[0]: quantity must not be negative", domain.ErrInvalidBillInput))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/calculate", bytes.NewBufferString(billBody))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_BILL_INPUT")
	assert.Contains(t, w.Body.String(), "quantity must not be negative")
}

func TestBillHandler_Export_Streams(t *testing.T) {
	h, mockSvc := newBillHandler()
	mockSvc.On("Export", mock.Anything, mock.MatchedBy(func(in service.ExportBillInput) bool {
		return in.Format == "csv"
	})).Return(&service.ExportResult{
		Filename:    "bill_2026-10-19.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Line,Description\n"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/export?format=csv", bytes.NewBufferString(billBody))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="bill_2026-10-19.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Line,Description\n", w.Body.String())
}

func TestBillHandler_Export_ArchivedReturnsURL(t *testing.T) {
	h, mockSvc := newBillHandler()
	mockSvc.On("Export", mock.Anything, mock.Anything).Return(&service.ExportResult{
		Filename:    "bill_2026-10-19.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Key:         "exports/2026/10/19/x.xlsx",
		URL:         "https://exports.example.com/x",
		Data:        []byte("PK"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/export", bytes.NewBufferString(billBody))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                 `json:"success"`
		Data    service.ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://exports.example.com/x", resp.Data.URL)
	assert.Empty(t, resp.Data.Data)
}
