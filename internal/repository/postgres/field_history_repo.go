package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const historySavepoint = "field_history_append"

type fieldHistoryRepo struct {
	q    queryer
	inTx bool
}

// NewFieldHistoryRepo creates a PostgreSQL-backed FieldHistoryRepository.
// When inTx is set, each append runs under a savepoint so that a failed
// insert leaves the surrounding transaction usable.
func NewFieldHistoryRepo(q queryer, inTx bool) port.FieldHistoryRepository {
	return &fieldHistoryRepo{q: q, inTx: inTx}
}

func (r *fieldHistoryRepo) Append(ctx context.Context, entry *domain.FieldDefinitionHistory) error {
	entry.ID = uuid.New()
	entry.ChangedAt = time.Now().UTC()

	if !r.inTx {
		return r.insert(ctx, entry)
	}

	if _, err := r.q.ExecContext(ctx, "SAVEPOINT "+historySavepoint); err != nil {
		return fmt.Errorf("fieldHistoryRepo.Append savepoint: %w", err)
	}
	if err := r.insert(ctx, entry); err != nil {
		if _, rbErr := r.q.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+historySavepoint); rbErr != nil {
			return fmt.Errorf("fieldHistoryRepo.Append rollback: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if _, err := r.q.ExecContext(ctx, "RELEASE SAVEPOINT "+historySavepoint); err != nil {
		return fmt.Errorf("fieldHistoryRepo.Append release: %w", err)
	}
	return nil
}

func (r *fieldHistoryRepo) insert(ctx context.Context, entry *domain.FieldDefinitionHistory) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO field_definition_history (id, field_definition_id, change_type, changed_by,
			old_values, new_values, changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.FieldDefinitionID, entry.ChangeType, entry.ChangedBy,
		entry.OldValues, entry.NewValues, entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("fieldHistoryRepo.Append: %w", err)
	}
	return nil
}

func (r *fieldHistoryRepo) ListByField(ctx context.Context, fieldID uuid.UUID, offset, limit int) ([]domain.FieldDefinitionHistory, int, error) {
	var total int
	err := r.q.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM field_definition_history WHERE field_definition_id = $1", fieldID)
	if err != nil {
		return nil, 0, fmt.Errorf("fieldHistoryRepo.ListByField count: %w", err)
	}

	var entries []domain.FieldDefinitionHistory
	err = r.q.SelectContext(ctx, &entries,
		`SELECT * FROM field_definition_history
		 WHERE field_definition_id = $1
		 ORDER BY changed_at DESC
		 LIMIT $2 OFFSET $3`,
		fieldID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("fieldHistoryRepo.ListByField: %w", err)
	}
	return entries, total, nil
}
