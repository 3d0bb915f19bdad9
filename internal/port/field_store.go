package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// FieldDefinitionRepository defines the contract for custom field definition persistence.
type FieldDefinitionRepository interface {
	Create(ctx context.Context, def *domain.FieldDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error)
	GetByName(ctx context.Context, entityType domain.EntityType, fieldName string) (*domain.FieldDefinition, error)
	List(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error)
	Update(ctx context.Context, def *domain.FieldDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FieldHistoryRepository defines the contract for the definition audit trail.
type FieldHistoryRepository interface {
	Append(ctx context.Context, entry *domain.FieldDefinitionHistory) error
	ListByField(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error)
}

// EntityFieldRepository reads and writes the custom_fields mapping of entity rows.
// Load returns domain.ErrNotFound when the entity row does not exist.
type EntityFieldRepository interface {
	Load(ctx context.Context, entityType domain.EntityType, entityID int64) (domain.FieldValues, error)
	Save(ctx context.Context, entityType domain.EntityType, entityID int64, values domain.FieldValues) error
	RemoveKey(ctx context.Context, entityType domain.EntityType, fieldName string) (int64, error)
}

// LegacyFieldRepository reads rows of the normalized field_data table.
type LegacyFieldRepository interface {
	ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.LegacyFieldValue, error)
}

// FieldStore groups the repositories the field service works with. Inside
// Transactor.WithinTx every repository shares one database transaction.
type FieldStore interface {
	Definitions() FieldDefinitionRepository
	History() FieldHistoryRepository
	Entities() EntityFieldRepository
	Legacy() LegacyFieldRepository
}

// Transactor runs fn as one unit of work. fn's error rolls the work back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(store FieldStore) error) error
}
