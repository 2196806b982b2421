package ingest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/pkg/config"
	"github.com/wonny/runboard/pkg/database"
)

func TestPostgresSource_RoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" || testing.Short() {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, config.DatabaseConfig{URL: url, MaxConns: 2})
	require.NoError(t, err)
	defer db.Close()

	src, err := NewPostgresSource(db.Pool, "runboard_test_rows")
	require.NoError(t, err)
	require.NoError(t, src.EnsureTable(ctx))
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DROP TABLE IF EXISTS "runboard_test_rows"`)
	})

	n, err := src.Replace(ctx, "2025", sampleTable())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	got, err := src.Fetch(ctx, "2025")
	require.NoError(t, err)
	assert.Equal(t, sampleTable(), got)

	r, err := newTestBuilder().Build(got, "2025", km)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
}
