package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID int64, role string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("repo.GetByID: %w", domain.ErrFieldNotFound), http.StatusNotFound, "FIELD_NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.NewFieldError(domain.ErrDuplicateField, domain.EntityProduct, "width", ""), http.StatusConflict, "DUPLICATE_FIELD"},
		{domain.NewFieldError(domain.ErrInvalidFieldName, domain.EntityProduct, "9x", ""), http.StatusBadRequest, "INVALID_FIELD_NAME"},
		{domain.ErrInvalidFieldType, http.StatusBadRequest, "INVALID_FIELD_TYPE"},
		{domain.ErrInvalidFieldDefinition, http.StatusBadRequest, "INVALID_FIELD_DEFINITION"},
		{domain.NewFieldError(domain.ErrUnknownField, domain.EntityProduct, "ghost", ""), http.StatusUnprocessableEntity, "UNKNOWN_FIELD"},
		{domain.ErrUnknownEntity, http.StatusNotFound, "UNKNOWN_ENTITY"},
		{domain.NewFieldError(domain.ErrTypeCoercion, domain.EntityProduct, "width", "bad"), http.StatusUnprocessableEntity, "TYPE_COERCION"},
		{fmt.Errorf("%w: no items", domain.ErrInvalidBillInput), http.StatusBadRequest, "INVALID_BILL_INPUT"},
		{errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_FieldErrorMessage(t *testing.T) {
	err := domain.NewFieldError(domain.ErrTypeCoercion, domain.EntityProduct, "width", `"abc" is not a number`)

	_, _, msg := handler.MapDomainError(err)

	assert.Contains(t, msg, "product.width")
	assert.Contains(t, msg, "is not a number")
}

func TestMapDomainError_InternalHidesDetail(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("pq: password authentication failed"))
	assert.NotContains(t, msg, "password")
}
