package s3_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/storage/s3"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Enabled:   true,
		Region:    "ap-south-1",
		Bucket:    "bill-exports",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	}
}

func TestNewExportArchive_RequiresBucket(t *testing.T) {
	cfg := testS3Config()
	cfg.Bucket = ""

	_, err := s3.NewExportArchive(context.Background(), cfg)

	assert.Error(t, err)
}

func TestExportArchive_PresignGet(t *testing.T) {
	archive, err := s3.NewExportArchive(context.Background(), testS3Config())
	require.NoError(t, err)

	link, err := archive.PresignGet(context.Background(), "exports/2026/10/19/abc.xlsx", "bill_2026-10-19.xlsx", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/bill-exports/exports/2026/10/19/abc.xlsx", u.Path)

	q := u.Query()
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.Equal(t, `attachment; filename="bill_2026-10-19.xlsx"`, q.Get("response-content-disposition"))
	assert.Contains(t, q.Get("X-Amz-Credential"), "minio/")
}
