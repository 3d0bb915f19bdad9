package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrDuplicateField         = errors.New("field already defined for this entity type")
	ErrInvalidFieldName       = errors.New("invalid field name")
	ErrInvalidFieldType       = errors.New("invalid field type")
	ErrInvalidFieldDefinition = errors.New("invalid field definition")
	ErrFieldNotFound          = errors.New("field definition not found")
	ErrUnknownField           = errors.New("no enabled field definition")
	ErrUnknownEntity          = errors.New("unknown entity")
	ErrTypeCoercion           = errors.New("value does not match field type")

	ErrInvalidBillInput = errors.New("invalid bill input")
)

// FieldError ties a field-store failure to the field it concerns.
// errors.Is matches the wrapped sentinel.
type FieldError struct {
	EntityType EntityType
	FieldName  string
	Reason     string
	Err        error
}

func (e *FieldError) Error() string {
	target := e.FieldName
	if e.EntityType != "" {
		target = fmt.Sprintf("%s.%s", e.EntityType, e.FieldName)
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", target, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", target, e.Err, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError builds a FieldError around one of the sentinel errors.
func NewFieldError(sentinel error, entityType EntityType, fieldName, reason string) *FieldError {
	return &FieldError{EntityType: entityType, FieldName: fieldName, Reason: reason, Err: sentinel}
}
