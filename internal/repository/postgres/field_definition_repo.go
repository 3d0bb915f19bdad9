package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type fieldDefinitionRepo struct {
	q queryer
}

// NewFieldDefinitionRepo creates a PostgreSQL-backed FieldDefinitionRepository.
func NewFieldDefinitionRepo(q queryer) port.FieldDefinitionRepository {
	return &fieldDefinitionRepo{q: q}
}

func (r *fieldDefinitionRepo) Create(ctx context.Context, def *domain.FieldDefinition) error {
	def.ID = uuid.New()
	now := time.Now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now

	query := `INSERT INTO field_definitions (id, entity_type, field_name, display_name, field_type,
		required, searchable, enabled, field_order, options, default_value, validation_pattern,
		help_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.q.ExecContext(ctx, query,
		def.ID, def.EntityType, def.FieldName, def.DisplayName, def.FieldType,
		def.Required, def.Searchable, def.Enabled, def.FieldOrder, def.Options,
		def.DefaultValue, def.ValidationPattern, def.HelpText, def.CreatedAt, def.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateField
		}
		return fmt.Errorf("fieldDefinitionRepo.Create: %w", err)
	}
	return nil
}

func (r *fieldDefinitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	var def domain.FieldDefinition
	err := r.q.GetContext(ctx, &def, "SELECT * FROM field_definitions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("fieldDefinitionRepo.GetByID: %w", err)
	}
	return &def, nil
}

func (r *fieldDefinitionRepo) GetByName(ctx context.Context, entityType domain.EntityType, fieldName string) (*domain.FieldDefinition, error) {
	var def domain.FieldDefinition
	err := r.q.GetContext(ctx, &def,
		"SELECT * FROM field_definitions WHERE entity_type = $1 AND field_name = $2",
		entityType, fieldName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("fieldDefinitionRepo.GetByName: %w", err)
	}
	return &def, nil
}

func (r *fieldDefinitionRepo) List(ctx context.Context, entityType domain.EntityType, enabledOnly bool) ([]domain.FieldDefinition, error) {
	query := "SELECT * FROM field_definitions WHERE entity_type = $1"
	if enabledOnly {
		query += " AND enabled = TRUE"
	}
	query += " ORDER BY field_order, field_name"

	var defs []domain.FieldDefinition
	if err := r.q.SelectContext(ctx, &defs, query, entityType); err != nil {
		return nil, fmt.Errorf("fieldDefinitionRepo.List: %w", err)
	}
	return defs, nil
}

func (r *fieldDefinitionRepo) Update(ctx context.Context, def *domain.FieldDefinition) error {
	def.UpdatedAt = time.Now().UTC()
	query := `UPDATE field_definitions SET display_name = $1, field_type = $2, required = $3,
		searchable = $4, enabled = $5, field_order = $6, options = $7, default_value = $8,
		validation_pattern = $9, help_text = $10, updated_at = $11
		WHERE id = $12`

	result, err := r.q.ExecContext(ctx, query,
		def.DisplayName, def.FieldType, def.Required, def.Searchable, def.Enabled,
		def.FieldOrder, def.Options, def.DefaultValue, def.ValidationPattern, def.HelpText,
		def.UpdatedAt, def.ID)
	if err != nil {
		return fmt.Errorf("fieldDefinitionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (r *fieldDefinitionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM field_definitions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("fieldDefinitionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}
