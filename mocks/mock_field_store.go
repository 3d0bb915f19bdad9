package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// MockFieldDefinitionRepo is a mock implementation of port.FieldDefinitionRepository.
type MockFieldDefinitionRepo struct {
	mock.Mock
}

func (m *MockFieldDefinitionRepo) Create(ctx context.Context, def *domain.FieldDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionRepo) GetByName(ctx context.Context, entityType domain.EntityType, fieldName string) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, entityType, fieldName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionRepo) List(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error) {
	args := m.Called(ctx, entityType, enabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionRepo) Update(ctx context.Context, def *domain.FieldDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFieldDefinitionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFieldHistoryRepo is a mock implementation of port.FieldHistoryRepository.
type MockFieldHistoryRepo struct {
	mock.Mock
}

func (m *MockFieldHistoryRepo) Append(ctx context.Context, entry *domain.FieldDefinitionHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFieldHistoryRepo) ListByField(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error) {
	args := m.Called(ctx, fieldID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FieldDefinitionHistory), args.Int(1), args.Error(2)
}

// MockEntityFieldRepo is a mock implementation of port.EntityFieldRepository.
type MockEntityFieldRepo struct {
	mock.Mock
}

func (m *MockEntityFieldRepo) Load(ctx context.Context, entityType domain.EntityType, entityID int64) (domain.FieldValues, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FieldValues), args.Error(1)
}

func (m *MockEntityFieldRepo) Save(ctx context.Context, entityType domain.EntityType, entityID int64, values domain.FieldValues) error {
	args := m.Called(ctx, entityType, entityID, values)
	return args.Error(0)
}

func (m *MockEntityFieldRepo) RemoveKey(ctx context.Context, entityType domain.EntityType, fieldName string) (int64, error) {
	args := m.Called(ctx, entityType, fieldName)
	return args.Get(0).(int64), args.Error(1)
}

// MockLegacyFieldRepo is a mock implementation of port.LegacyFieldRepository.
type MockLegacyFieldRepo struct {
	mock.Mock
}

func (m *MockLegacyFieldRepo) ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.LegacyFieldValue, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegacyFieldValue), args.Error(1)
}

// MockFieldStore bundles the repository mocks. It serves as both
// port.FieldStore and port.Transactor; WithinTx hands the same mocks to fn
// and counts how often it was entered.
type MockFieldStore struct {
	Defs    *MockFieldDefinitionRepo
	Hist    *MockFieldHistoryRepo
	Ents    *MockEntityFieldRepo
	Old     *MockLegacyFieldRepo
	TxCalls int
}

// NewMockFieldStore creates a MockFieldStore with fresh repository mocks.
func NewMockFieldStore() *MockFieldStore {
	return &MockFieldStore{
		Defs: new(MockFieldDefinitionRepo),
		Hist: new(MockFieldHistoryRepo),
		Ents: new(MockEntityFieldRepo),
		Old:  new(MockLegacyFieldRepo),
	}
}

func (s *MockFieldStore) Definitions() port.FieldDefinitionRepository { return s.Defs }
func (s *MockFieldStore) History() port.FieldHistoryRepository        { return s.Hist }
func (s *MockFieldStore) Entities() port.EntityFieldRepository        { return s.Ents }
func (s *MockFieldStore) Legacy() port.LegacyFieldRepository          { return s.Old }

func (s *MockFieldStore) WithinTx(ctx context.Context, fn func(store port.FieldStore) error) error {
	s.TxCalls++
	return fn(s)
}
