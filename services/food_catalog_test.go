package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodCatalogLookup(t *testing.T) {
	catalog := newTestCatalog(t)

	rec, ok := catalog.Lookup("banana")
	require.True(t, ok)
	assert.Equal(t, "Banana", rec.Name)
	assert.Equal(t, 105.0, rec.PerServing.Calories)
	assert.Equal(t, 89.0, rec.Per100G.Calories)

	_, ok = catalog.Lookup("dragonfruit")
	assert.False(t, ok)
}

func TestFoodCatalogIndexesDisplayName(t *testing.T) {
	catalog := newTestCatalog(t)

	// The dataset key and the normalized display name both resolve to the
	// same record.
	byKey, ok := catalog.Lookup("choc_chip_cookie")
	require.True(t, ok)
	byName, ok := catalog.Lookup("chocolate_chip_cookie")
	require.True(t, ok)
	assert.Same(t, byKey, byName)
}

func TestFoodCatalogLoadIsIdempotent(t *testing.T) {
	catalog := newTestCatalog(t)
	require.NoError(t, catalog.Load())
	require.NoError(t, catalog.Load())
	assert.Equal(t, 5, catalog.Size())
}

func TestFoodCatalogMissingDataset(t *testing.T) {
	catalog := NewFoodCatalog("testdata/does_not_exist.json")
	err := catalog.Load()
	require.Error(t, err)

	// The failure is cached, not retried.
	assert.Equal(t, err, catalog.Load())
}
