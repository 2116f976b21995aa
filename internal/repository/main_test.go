//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongoDB(m))
}

// setupTestDB connects to the shared container with a database per test.
func setupTestDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.MongoURI(t), testutil.DatabaseName(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}
