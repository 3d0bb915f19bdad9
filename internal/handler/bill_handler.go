package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// BillHandler handles bill calculation and export endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Calculate handles POST /api/v1/bills/calculate
func (h *BillHandler) Calculate(c *gin.Context) {
	var input service.CalculateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	calc, err := h.billService.Calculate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calc)
}

// Export handles POST /api/v1/bills/export
//
// When the export was archived the response carries a presigned download URL;
// otherwise the file is streamed as an attachment.
func (h *BillHandler) Export(c *gin.Context) {
	var input service.ExportBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if f := c.Query("format"); f != "" {
		input.Format = f
	}

	res, err := h.billService.Export(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if res.URL != "" {
		RespondOK(c, res)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
