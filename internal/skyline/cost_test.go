package skyline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinCost_GreedyCheapestFirst(t *testing.T) {
	c := twoStoreCatalogue()
	list := listOf(map[ProductID]int{"milk": 5})

	cost := MinCost(c, []StoreID{"near", "far"}, list)
	// far is cheaper (1.00/unit) and has enough inventory (10 >= 5); all 5
	// units should come from far.
	assert.Equal(t, 5.0, cost)
}

func TestMinCost_SplitsAcrossStoresWhenOneRunsOut(t *testing.T) {
	stores := map[StoreID]*Store{
		"cheap": store("cheap", Location{}, map[ProductID]float64{"milk": 1}, map[ProductID]int{"milk": 3}),
		"pricey": store("pricey", Location{}, map[ProductID]float64{"milk": 2}, map[ProductID]int{"milk": 10}),
	}
	c := NewCatalogue(stores, nil)
	c.Precompute()

	cost := MinCost(c, []StoreID{"cheap", "pricey"}, listOf(map[ProductID]int{"milk": 5}))
	// 3 units @1 + 2 units @2 = 7
	assert.Equal(t, 7.0, cost)
}

func TestMinCost_InfeasibleRouteIsInfinite(t *testing.T) {
	c := twoStoreCatalogue()
	cost := MinCost(c, []StoreID{"near"}, listOf(map[ProductID]int{"milk": 100}))
	assert.True(t, math.IsInf(cost, 1))
}

func TestLowerBound_EqualsWholeCatalogueMinCost(t *testing.T) {
	c := twoStoreCatalogue()
	list := listOf(map[ProductID]int{"milk": 5})
	assert.Equal(t, MinCost(c, c.StoreIDs(), list), LowerBound(c, list))
}

func TestFeasibleOverRoute_NonSequentialDepletion(t *testing.T) {
	// Preserved (not a bug): two stores each individually short two units of
	// demand, but their inventories are summed WITHOUT sequential depletion
	// across a pretend visit order, so together they still look feasible for
	// time-planning purposes even though no concrete per-store split is
	// computed here (that's MinCost's job).
	stores := map[StoreID]*Store{
		"a": store("a", Location{}, map[ProductID]float64{"milk": 1}, map[ProductID]int{"milk": 2}),
		"b": store("b", Location{}, map[ProductID]float64{"milk": 1}, map[ProductID]int{"milk": 2}),
	}
	c := NewCatalogue(stores, nil)
	c.Precompute()

	assert.True(t, FeasibleOverRoute(c, []StoreID{"a", "b"}, listOf(map[ProductID]int{"milk": 4})))
	assert.False(t, FeasibleOverRoute(c, []StoreID{"a", "b"}, listOf(map[ProductID]int{"milk": 5})))
}
