package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/storage"
)

type failingCatalog struct{ storage.CatalogRepository }

func (failingCatalog) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	return nil, errors.New("catalog offline")
}

func TestCreateAndGetCustomPlan(t *testing.T) {
	ctx := context.Background()
	catalog := storage.NewMemoryCatalog(seedCatalog(t))
	plans := storage.NewMemoryPlanStore()
	alice := &internal.User{ID: "alice"}
	bob := &internal.User{ID: "bob"}

	req := &CustomPlanRequest{Profile: exampleProfile(), Preferences: ketoPrefs()}
	first, err := CreateCustomPlan(ctx, catalog, plans, alice, req, NewRandomSource(1))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "alice", first.UserID)
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)

	time.Sleep(2 * time.Millisecond)
	second, err := CreateCustomPlan(ctx, catalog, plans, alice, req, NewRandomSource(2))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := GetCustomPlan(ctx, plans, alice, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Days, got.Days)

	_, err = GetCustomPlan(ctx, plans, bob, first.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = GetCustomPlan(ctx, plans, alice, "missing")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	list, err := ListCustomPlans(ctx, plans, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	list, err = ListCustomPlans(ctx, plans, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateCustomPlan_Errors(t *testing.T) {
	ctx := context.Background()
	plans := storage.NewMemoryPlanStore()
	user := &internal.User{ID: "alice"}

	bad := &CustomPlanRequest{Profile: exampleProfile()}
	_, err := CreateCustomPlan(ctx, storage.NewMemoryCatalog(seedCatalog(t)), plans, user, bad, NewRandomSource(1))
	assert.ErrorIs(t, err, internal.ErrInvalidProfile)

	req := &CustomPlanRequest{Profile: exampleProfile(), Preferences: ketoPrefs()}
	_, err = CreateCustomPlan(ctx, failingCatalog{}, plans, user, req, NewRandomSource(1))
	assert.ErrorContains(t, err, "catalog offline")

	list, err := ListCustomPlans(ctx, plans, user)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestValidatePreferences(t *testing.T) {
	assert.NoError(t, ValidatePreferences(&internal.PlanPreferences{DietType: internal.DietVegan}))
	assert.ErrorIs(t, ValidatePreferences(&internal.PlanPreferences{}), internal.ErrInvalidProfile)
}
