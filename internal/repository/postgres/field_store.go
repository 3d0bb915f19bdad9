package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"gstbill/internal/port"
)

// FieldStore is the PostgreSQL implementation of port.FieldStore and
// port.Transactor.
type FieldStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFieldStore creates a FieldStore over db.
func NewFieldStore(db *sqlx.DB, logger *zap.Logger) *FieldStore {
	return &FieldStore{db: db, logger: logger}
}

func (s *FieldStore) Definitions() port.FieldDefinitionRepository {
	return NewFieldDefinitionRepo(s.db)
}

func (s *FieldStore) History() port.FieldHistoryRepository {
	return NewFieldHistoryRepo(s.db, false)
}

func (s *FieldStore) Entities() port.EntityFieldRepository {
	return NewEntityFieldRepo(s.db, false)
}

func (s *FieldStore) Legacy() port.LegacyFieldRepository {
	return NewLegacyFieldRepo(s.db)
}

// WithinTx runs fn in a database transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
func (s *FieldStore) WithinTx(ctx context.Context, fn func(store port.FieldStore) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("fieldStore.WithinTx begin: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in transaction", zap.Any("panic", r))
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&txFieldStore{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", zap.Error(rbErr), zap.NamedError("cause", err))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("fieldStore.WithinTx commit: %w", err)
	}
	return nil
}

type txFieldStore struct {
	tx *sqlx.Tx
}

func (s *txFieldStore) Definitions() port.FieldDefinitionRepository {
	return NewFieldDefinitionRepo(s.tx)
}

func (s *txFieldStore) History() port.FieldHistoryRepository {
	return NewFieldHistoryRepo(s.tx, true)
}

func (s *txFieldStore) Entities() port.EntityFieldRepository {
	return NewEntityFieldRepo(s.tx, true)
}

func (s *txFieldStore) Legacy() port.LegacyFieldRepository {
	return NewLegacyFieldRepo(s.tx)
}

var (
	_ port.FieldStore = (*FieldStore)(nil)
	_ port.Transactor = (*FieldStore)(nil)
)
