package port

import (
	"context"

	"gstbill/internal/domain"
)

// CompanyRepository resolves the seller record.
type CompanyRepository interface {
	// GetPrimary returns the oldest company row, or domain.ErrNotFound.
	GetPrimary(ctx context.Context) (*domain.Company, error)
}

// CustomerRepository resolves buyer records.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
