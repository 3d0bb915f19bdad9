package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type entityFieldRepo struct {
	q    queryer
	inTx bool
}

// NewEntityFieldRepo creates a PostgreSQL-backed EntityFieldRepository over the
// custom_fields column of every known entity table. Inside a transaction Load
// locks the entity row until commit.
func NewEntityFieldRepo(q queryer, inTx bool) port.EntityFieldRepository {
	return &entityFieldRepo{q: q, inTx: inTx}
}

func tableFor(entityType domain.EntityType) (string, error) {
	table := entityType.Table()
	if table == "" {
		return "", domain.ErrUnknownEntity
	}
	return table, nil
}

func (r *entityFieldRepo) Load(ctx context.Context, entityType domain.EntityType, entityID int64) (domain.FieldValues, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT custom_fields FROM %s WHERE id = $1", table)
	if r.inTx {
		query += " FOR UPDATE"
	}

	var values domain.FieldValues
	if err := r.q.GetContext(ctx, &values, query, entityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("entityFieldRepo.Load: %w", err)
	}
	if values == nil {
		values = domain.FieldValues{}
	}
	return values, nil
}

func (r *entityFieldRepo) Save(ctx context.Context, entityType domain.EntityType, entityID int64, values domain.FieldValues) error {
	table, err := tableFor(entityType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET custom_fields = $1, updated_at = NOW() WHERE id = $2", table)
	result, err := r.q.ExecContext(ctx, query, values, entityID)
	if err != nil {
		return fmt.Errorf("entityFieldRepo.Save: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *entityFieldRepo) RemoveKey(ctx context.Context, entityType domain.EntityType, fieldName string) (int64, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(
		"UPDATE %s SET custom_fields = custom_fields - $1::text WHERE custom_fields -> $1::text IS NOT NULL",
		table)
	result, err := r.q.ExecContext(ctx, query, fieldName)
	if err != nil {
		return 0, fmt.Errorf("entityFieldRepo.RemoveKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
