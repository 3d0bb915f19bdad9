package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockFieldService is a mock implementation of service.FieldService.
type MockFieldService struct {
	mock.Mock
}

func (m *MockFieldService) DefineField(ctx context.Context, input service.DefineFieldInput) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) UpdateField(ctx context.Context, fieldID uuid.UUID, input service.UpdateFieldInput, actorID *int64) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, fieldID, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) ToggleField(ctx context.Context, fieldID uuid.UUID, actorID *int64) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, fieldID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) ReorderFields(ctx context.Context, entityType domain.EntityType, fieldIDs []uuid.UUID, actorID *int64) ([]domain.FieldDefinition, error) {
	args := m.Called(ctx, entityType, fieldIDs, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) DeleteField(ctx context.Context, fieldID uuid.UUID, actorID *int64) error {
	args := m.Called(ctx, fieldID, actorID)
	return args.Error(0)
}

func (m *MockFieldService) GetField(ctx context.Context, fieldID uuid.UUID) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) ListFields(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error) {
	args := m.Called(ctx, entityType, enabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldService) ListHistory(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error) {
	args := m.Called(ctx, fieldID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FieldDefinitionHistory), args.Int(1), args.Error(2)
}

func (m *MockFieldService) SetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName, raw string) error {
	args := m.Called(ctx, entityType, entityID, fieldName, raw)
	return args.Error(0)
}

func (m *MockFieldService) SetFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64, values map[string]string) error {
	args := m.Called(ctx, entityType, entityID, values)
	return args.Error(0)
}

func (m *MockFieldService) GetFieldValue(ctx context.Context, entityType domain.EntityType, entityID int64, fieldName string) (domain.FieldValue, bool, error) {
	args := m.Called(ctx, entityType, entityID, fieldName)
	return args.Get(0).(domain.FieldValue), args.Bool(1), args.Error(2)
}

func (m *MockFieldService) GetAllFieldValues(ctx context.Context, entityType domain.EntityType, entityID int64) (map[string]domain.FieldValue, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.FieldValue), args.Error(1)
}

func (m *MockFieldService) MigrateLegacyValues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockFieldService) SeedDefaults(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
