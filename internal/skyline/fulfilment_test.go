package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMinTimeRoute_EmptyListIsDirectTrip(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 10, Y: 0}

	stores, shoppingTime, ok := FindMinTimeRoute(c, listOf(map[ProductID]int{}), shopper, customer)
	require.True(t, ok)
	assert.Nil(t, stores)
	assert.Equal(t, Distance(shopper, customer), shoppingTime)
}

func TestFindMinTimeRoute_SingleStoreSufficesWhenNearest(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 1, Y: 1}
	customer := Location{X: 1, Y: -1}

	stores, shoppingTime, ok := FindMinTimeRoute(c, listOf(map[ProductID]int{"milk": 3}), shopper, customer)
	require.True(t, ok)
	require.Len(t, stores, 1)
	assert.Equal(t, StoreID("near"), stores[0])
	assert.Greater(t, shoppingTime, 0.0)
}

func TestFindMinTimeRoute_SplitsAcrossTwoStoresWhenNeeded(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 6, Y: 0}

	// Demand exceeds any single store's inventory, forcing a two-store route.
	stores, _, ok := FindMinTimeRoute(c, listOf(map[ProductID]int{"milk": 15}), shopper, customer)
	require.True(t, ok)
	assert.Len(t, stores, 2)
}

func TestFindMinTimeRoute_InfeasibleWholeCatalogue(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 1, Y: 1}

	_, _, ok := FindMinTimeRoute(c, listOf(map[ProductID]int{"milk": 1000}), shopper, customer)
	assert.False(t, ok)
}

// Regression: the feasibility precheck must consult the whole catalogue's
// aggregate inventory, not just stores that happen to be cheapest or nearest.
// Before the fix, a precheck scoped to a narrower candidate set could
// wrongly report infeasible demand that the catalogue as a whole can cover.
func TestFindMinTimeRoute_FeasibilityUsesWholeCatalogueNotCandidateSubset(t *testing.T) {
	stores := map[StoreID]*Store{
		"a": store("a", Location{X: 0, Y: 0}, map[ProductID]float64{"milk": 1}, map[ProductID]int{"milk": 5}),
		"b": store("b", Location{X: 100, Y: 100}, map[ProductID]float64{"milk": 1}, map[ProductID]int{"milk": 5}),
	}
	travel := TravelMatrix{}
	travel.Set("a", "b", Distance(Location{X: 0, Y: 0}, Location{X: 100, Y: 100}))
	c := NewCatalogue(stores, travel)
	c.Precompute()

	// 10 units: no single store covers it, but the catalogue aggregate does.
	_, _, ok := FindMinTimeRoute(c, listOf(map[ProductID]int{"milk": 10}), Location{X: 0, Y: 0}, Location{X: 1, Y: 1})
	assert.True(t, ok)
}
