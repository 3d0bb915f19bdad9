package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// FieldHandler handles custom field definition administration.
type FieldHandler struct {
	fieldService service.FieldService
}

// NewFieldHandler creates a new FieldHandler.
func NewFieldHandler(fieldService service.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

// ReorderFieldsRequest is the body of POST /admin/fields/reorder.
type ReorderFieldsRequest struct {
	EntityType string      `json:"entity_type" binding:"required"`
	FieldIDs   []uuid.UUID `json:"field_ids" binding:"required"`
}

func parseFieldID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid field ID")
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /api/v1/admin/fields?entity_type=product&enabled_only=true
func (h *FieldHandler) List(c *gin.Context) {
	entityType := c.Query("entity_type")
	if entityType == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "entity_type is required")
		return
	}
	enabledOnly, _ := strconv.ParseBool(c.DefaultQuery("enabled_only", "false"))

	defs, err := h.fieldService.ListFields(c.Request.Context(), domain.EntityType(entityType), enabledOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, defs)
}

// Create handles POST /api/v1/admin/fields
func (h *FieldHandler) Create(c *gin.Context) {
	var input service.DefineFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.ActorID = middleware.ActorID(c)

	def, err := h.fieldService.DefineField(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, def)
}

// Get handles GET /api/v1/admin/fields/:id
func (h *FieldHandler) Get(c *gin.Context) {
	id, ok := parseFieldID(c)
	if !ok {
		return
	}

	def, err := h.fieldService.GetField(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, def)
}

// Update handles PUT /api/v1/admin/fields/:id
func (h *FieldHandler) Update(c *gin.Context) {
	id, ok := parseFieldID(c)
	if !ok {
		return
	}

	var input service.UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	def, err := h.fieldService.UpdateField(c.Request.Context(), id, input, middleware.ActorID(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, def)
}

// Delete handles DELETE /api/v1/admin/fields/:id
func (h *FieldHandler) Delete(c *gin.Context) {
	id, ok := parseFieldID(c)
	if !ok {
		return
	}

	if err := h.fieldService.DeleteField(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "field deleted"})
}

// Toggle handles POST /api/v1/admin/fields/:id/toggle
func (h *FieldHandler) Toggle(c *gin.Context) {
	id, ok := parseFieldID(c)
	if !ok {
		return
	}

	def, err := h.fieldService.ToggleField(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, def)
}

// Reorder handles POST /api/v1/admin/fields/reorder
func (h *FieldHandler) Reorder(c *gin.Context) {
	var req ReorderFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	defs, err := h.fieldService.ReorderFields(c.Request.Context(), domain.EntityType(req.EntityType), req.FieldIDs, middleware.ActorID(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, defs)
}

// History handles GET /api/v1/admin/fields/:id/history
func (h *FieldHandler) History(c *gin.Context) {
	id, ok := parseFieldID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, total, err := h.fieldService.ListHistory(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// MigrateLegacy handles POST /api/v1/admin/fields/migrate-legacy
func (h *FieldHandler) MigrateLegacy(c *gin.Context) {
	n, err := h.fieldService.MigrateLegacyValues(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"migrated": n})
}
