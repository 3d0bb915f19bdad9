package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// EntityFieldHandler reads and writes custom field values on business entities.
type EntityFieldHandler struct {
	fieldService service.FieldService
}

// NewEntityFieldHandler creates a new EntityFieldHandler.
func NewEntityFieldHandler(fieldService service.FieldService) *EntityFieldHandler {
	return &EntityFieldHandler{fieldService: fieldService}
}

// SetFieldValueRequest is the body of PUT /entities/:type/:id/fields/:name.
// Value may be a JSON string, number, boolean or null.
type SetFieldValueRequest struct {
	Value json.RawMessage `json:"value"`
}

// SetFieldValuesRequest is the body of PUT /entities/:type/:id/fields.
type SetFieldValuesRequest struct {
	Values map[string]json.RawMessage `json:"values" binding:"required"`
}

// submittedText turns a submitted JSON scalar into the text form the field
// store coerces. null and absent mean "unset".
func submittedText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("value must be a string, number, boolean or null")
	default:
		return string(raw), nil
	}
}

func parseEntityRef(c *gin.Context) (domain.EntityType, int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return "", 0, false
	}
	return domain.EntityType(c.Param("type")), id, true
}

// List handles GET /api/v1/entities/:type/:id/fields
func (h *EntityFieldHandler) List(c *gin.Context) {
	entityType, entityID, ok := parseEntityRef(c)
	if !ok {
		return
	}

	values, err := h.fieldService.GetAllFieldValues(c.Request.Context(), entityType, entityID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, values)
}

// Get handles GET /api/v1/entities/:type/:id/fields/:name
func (h *EntityFieldHandler) Get(c *gin.Context) {
	entityType, entityID, ok := parseEntityRef(c)
	if !ok {
		return
	}
	name := c.Param("name")

	v, set, err := h.fieldService.GetFieldValue(c.Request.Context(), entityType, entityID, name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"field_name": name, "value": v, "set": set})
}

// Set handles PUT /api/v1/entities/:type/:id/fields/:name
func (h *EntityFieldHandler) Set(c *gin.Context) {
	entityType, entityID, ok := parseEntityRef(c)
	if !ok {
		return
	}
	name := c.Param("name")

	var req SetFieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	raw, err := submittedText(req.Value)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.fieldService.SetFieldValue(c.Request.Context(), entityType, entityID, name, raw); err != nil {
		HandleError(c, err)
		return
	}
	h.respondValue(c, entityType, entityID, name)
}

// Clear handles DELETE /api/v1/entities/:type/:id/fields/:name
func (h *EntityFieldHandler) Clear(c *gin.Context) {
	entityType, entityID, ok := parseEntityRef(c)
	if !ok {
		return
	}

	if err := h.fieldService.SetFieldValue(c.Request.Context(), entityType, entityID, c.Param("name"), ""); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "field value cleared"})
}

// SetMany handles PUT /api/v1/entities/:type/:id/fields
func (h *EntityFieldHandler) SetMany(c *gin.Context) {
	entityType, entityID, ok := parseEntityRef(c)
	if !ok {
		return
	}

	var req SetFieldValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	values := make(map[string]string, len(req.Values))
	for name, v := range req.Values {
		raw, err := submittedText(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("%s: %v", name, err))
			return
		}
		values[name] = raw
	}

	if err := h.fieldService.SetFieldValues(c.Request.Context(), entityType, entityID, values); err != nil {
		HandleError(c, err)
		return
	}

	all, err := h.fieldService.GetAllFieldValues(c.Request.Context(), entityType, entityID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, all)
}

func (h *EntityFieldHandler) respondValue(c *gin.Context, entityType domain.EntityType, entityID int64, name string) {
	v, set, err := h.fieldService.GetFieldValue(c.Request.Context(), entityType, entityID, name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"field_name": name, "value": v, "set": set})
}
