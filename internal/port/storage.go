package port

import (
	"context"
	"io"
	"time"
)

// ArchivedObject describes an export stored in the archive.
type ArchivedObject struct {
	Key      string
	Location string
	ETag     string
}

// ExportArchive stores generated bill exports and hands out time-limited links.
type ExportArchive interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (*ArchivedObject, error)
	PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
}
