package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue_OffersSortedByCostThenStore(t *testing.T) {
	c := twoStoreCatalogue()
	offers := c.Offers("milk")
	require.Len(t, offers, 2)
	assert.Equal(t, StoreID("far"), offers[0].Store) // cheaper
	assert.Equal(t, StoreID("near"), offers[1].Store)
}

func TestCatalogue_OffersExcludesZeroInventory(t *testing.T) {
	stores := map[StoreID]*Store{
		"a": store("a", Location{}, map[ProductID]float64{"eggs": 3}, map[ProductID]int{"eggs": 0}),
		"b": store("b", Location{}, map[ProductID]float64{"eggs": 4}, map[ProductID]int{"eggs": 5}),
	}
	c := NewCatalogue(stores, nil)
	c.Precompute()
	offers := c.Offers("eggs")
	require.Len(t, offers, 1)
	assert.Equal(t, StoreID("b"), offers[0].Store)
}

func TestCatalogue_FeasibleAgainstCatalogue_WholeCatalogueSum(t *testing.T) {
	// Regression for the fixed bug: feasibility must sum inventory across the
	// WHOLE catalogue, not any single store, even when no individual store
	// alone carries enough.
	stores := map[StoreID]*Store{
		"a": store("a", Location{}, map[ProductID]float64{"bread": 1}, map[ProductID]int{"bread": 3}),
		"b": store("b", Location{}, map[ProductID]float64{"bread": 2}, map[ProductID]int{"bread": 4}),
	}
	c := NewCatalogue(stores, nil)
	c.Precompute()

	assert.True(t, c.FeasibleAgainstCatalogue(listOf(map[ProductID]int{"bread": 7})))
	assert.False(t, c.FeasibleAgainstCatalogue(listOf(map[ProductID]int{"bread": 8})))
}

func TestCatalogue_FeasibleAgainstCatalogue_MissingProduct(t *testing.T) {
	c := twoStoreCatalogue()
	assert.False(t, c.FeasibleAgainstCatalogue(listOf(map[ProductID]int{"caviar": 1})))
}
