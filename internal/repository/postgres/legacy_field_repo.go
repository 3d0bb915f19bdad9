package postgres

import (
	"context"
	"fmt"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type legacyFieldRepo struct {
	q queryer
}

// NewLegacyFieldRepo creates a reader over the normalized field_data table.
func NewLegacyFieldRepo(q queryer) port.LegacyFieldRepository {
	return &legacyFieldRepo{q: q}
}

func (r *legacyFieldRepo) ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.LegacyFieldValue, error) {
	var rows []domain.LegacyFieldValue
	err := r.q.SelectContext(ctx, &rows,
		`SELECT id, field_definition_id, entity_id, value_text, value_number, value_date, value_boolean
		 FROM field_data
		 WHERE id > $1
		 ORDER BY id
		 LIMIT $2`,
		afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("legacyFieldRepo.ListAfter: %w", err)
	}
	return rows, nil
}
