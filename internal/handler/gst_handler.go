package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbill/internal/gst"
)

// GSTHandler serves the state registry and GSTIN checks.
type GSTHandler struct{}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler() *GSTHandler {
	return &GSTHandler{}
}

// ListStates handles GET /api/v1/gst/states
func (h *GSTHandler) ListStates(c *gin.Context) {
	RespondOK(c, gst.States())
}

// GetState handles GET /api/v1/gst/states/:code
func (h *GSTHandler) GetState(c *gin.Context) {
	code := c.Param("code")
	if !gst.IsKnownStateCode(code) {
		RespondError(c, http.StatusNotFound, "UNKNOWN_STATE", "unknown state code")
		return
	}
	RespondOK(c, gst.State{Code: code, Name: gst.StateName(code)})
}

// ValidateGSTIN handles GET /api/v1/gst/gstin/:gstin
func (h *GSTHandler) ValidateGSTIN(c *gin.Context) {
	gstin := strings.ToUpper(strings.TrimSpace(c.Param("gstin")))
	valid := gst.ValidateGSTIN(gstin)

	resp := gin.H{"gstin": gstin, "valid": valid}
	if valid {
		code := gst.GSTINStateCode(gstin)
		resp["state_code"] = code
		resp["state_name"] = gst.StateName(code)
	}
	RespondOK(c, resp)
}
