package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/port"
)

// MockExportArchive is a mock implementation of port.ExportArchive.
type MockExportArchive struct {
	mock.Mock
}

func (m *MockExportArchive) Put(ctx context.Context, key, contentType string, body io.Reader) (*port.ArchivedObject, error) {
	args := m.Called(ctx, key, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ArchivedObject), args.Error(1)
}

func (m *MockExportArchive) PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, filename, expiry)
	return args.String(0), args.Error(1)
}
