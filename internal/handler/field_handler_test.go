package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newFieldHandler() (*handler.FieldHandler, *mocks.MockFieldService) {
	mockSvc := new(mocks.MockFieldService)
	return handler.NewFieldHandler(mockSvc), mockSvc
}

func actorIs(id int64) interface{} {
	return mock.MatchedBy(func(a *int64) bool { return a != nil && *a == id })
}

func sampleField() *domain.FieldDefinition {
	return &domain.FieldDefinition{
		ID:          uuid.New(),
		EntityType:  domain.EntityProduct,
		FieldName:   "warranty_months",
		DisplayName: "Warranty (months)",
		FieldType:   domain.FieldTypeNumber,
		Enabled:     true,
	}
}

func TestFieldHandler_Create_Success(t *testing.T) {
	h, mockSvc := newFieldHandler()
	def := sampleField()

	mockSvc.On("DefineField", mock.Anything, mock.MatchedBy(func(in service.DefineFieldInput) bool {
		return in.FieldName == "warranty_months" && in.ActorID != nil && *in.ActorID == 3
	})).Return(def, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"entity_type":  "product",
		"field_name":   "warranty_months",
		"display_name": "Warranty (months)",
		"field_type":   "number",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, 3, "admin")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "warranty_months")
	mockSvc.AssertExpectations(t)
}

func TestFieldHandler_Create_MissingFields(t *testing.T) {
	h, mockSvc := newFieldHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields", bytes.NewBufferString(`{"entity_type":"product"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "DefineField", mock.Anything, mock.Anything)
}

func TestFieldHandler_Create_Duplicate(t *testing.T) {
	h, mockSvc := newFieldHandler()
	mockSvc.On("DefineField", mock.Anything, mock.Anything).
		Return(nil, domain.NewFieldError(domain.ErrDuplicateField, domain.EntityProduct, "warranty_months", ""))

	body, _ := json.Marshal(map[string]interface{}{
		"entity_type":  "product",
		"field_name":   "warranty_months",
		"display_name": "Warranty",
		"field_type":   "number",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_FIELD")
}

func TestFieldHandler_List_RequiresEntityType(t *testing.T) {
	h, _ := newFieldHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/fields", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFieldHandler_List_EnabledOnly(t *testing.T) {
	h, mockSvc := newFieldHandler()
	mockSvc.On("ListFields", mock.Anything, domain.EntityProduct, true).
		Return([]domain.FieldDefinition{*sampleField()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/fields?entity_type=product&enabled_only=true", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFieldHandler_Get_InvalidID(t *testing.T) {
	h, mockSvc := newFieldHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/fields/not-a-uuid", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetField", mock.Anything, mock.Anything)
}

func TestFieldHandler_Get_NotFound(t *testing.T) {
	h, mockSvc := newFieldHandler()
	id := uuid.New()
	mockSvc.On("GetField", mock.Anything, id).Return(nil, domain.ErrFieldNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/fields/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FIELD_NOT_FOUND")
}

func TestFieldHandler_Update_PassesActor(t *testing.T) {
	h, mockSvc := newFieldHandler()
	def := sampleField()
	mockSvc.On("UpdateField", mock.Anything, def.ID, mock.MatchedBy(func(in service.UpdateFieldInput) bool {
		return in.DisplayName != nil && *in.DisplayName == "Warranty" && in.FieldType == nil
	}), actorIs(5)).Return(def, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/admin/fields/"+def.ID.String(), bytes.NewBufferString(`{"display_name":"Warranty"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: def.ID.String()}}
	setAuthContext(c, 5, "admin")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFieldHandler_Toggle(t *testing.T) {
	h, mockSvc := newFieldHandler()
	def := sampleField()
	def.Enabled = false
	mockSvc.On("ToggleField", mock.Anything, def.ID, actorIs(5)).Return(def, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields/"+def.ID.String()+"/toggle", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: def.ID.String()}}
	setAuthContext(c, 5, "admin")

	h.Toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enabled":false`)
}

func TestFieldHandler_Delete(t *testing.T) {
	h, mockSvc := newFieldHandler()
	id := uuid.New()
	mockSvc.On("DeleteField", mock.Anything, id, actorIs(5)).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/admin/fields/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, 5, "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFieldHandler_Reorder(t *testing.T) {
	h, mockSvc := newFieldHandler()
	a, b := uuid.New(), uuid.New()
	mockSvc.On("ReorderFields", mock.Anything, domain.EntityCustomer, []uuid.UUID{b, a}, actorIs(5)).
		Return([]domain.FieldDefinition{}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"entity_type": "customer",
		"field_ids":   []string{b.String(), a.String()},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields/reorder", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, 5, "admin")

	h.Reorder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFieldHandler_History_Paginated(t *testing.T) {
	h, mockSvc := newFieldHandler()
	id := uuid.New()
	entries := []domain.FieldDefinitionHistory{{ID: uuid.New(), FieldDefinitionID: id, ChangeType: domain.ChangeUpdate}}
	mockSvc.On("ListHistory", mock.Anything, id, 10, 5).Return(entries, 11, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/fields/"+id.String()+"/history?offset=10&limit=5", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.History(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestFieldHandler_MigrateLegacy(t *testing.T) {
	h, mockSvc := newFieldHandler()
	mockSvc.On("MigrateLegacyValues", mock.Anything).Return(42, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/fields/migrate-legacy", http.NoBody)

	h.MigrateLegacy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"migrated":42`)
}
