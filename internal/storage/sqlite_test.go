package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
)

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "fitplanner.db")

	s, err := NewSQLiteStorage(ctx, path, internal.NewNopLogger())
	require.NoError(t, err)
	testSeededCatalog(t, s)
	testPlanRepository(t, s)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStorage(ctx, path, internal.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	recipes, err := reopened.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 15, "seed runs only on an empty database")

	list, err := reopened.ListPlans(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
