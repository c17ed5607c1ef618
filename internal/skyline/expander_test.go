package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regression: seeding a candidate from an empty route must always compute
// the full dist(shopper, first) + dist(first, customer) shopping_time. The
// reference implementation left shopping_time at its zero default here.
func TestExpander_SeedComputesFullShoppingTime(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 1, Y: 0}
	customer := Location{X: 1, Y: 10}

	exp := NewModeA(c, shopper, customer)
	succs := exp.Successors(RouteCandidate{})
	require.Len(t, succs, 1)

	seeded := succs[0]
	require.Len(t, seeded.Stores, 1)
	expected := Distance(shopper, c.mustLoc(seeded.Stores[0])) + Distance(c.mustLoc(seeded.Stores[0]), customer)
	assert.Equal(t, expected, seeded.ShoppingTime)
	assert.NotEqual(t, 0.0, seeded.ShoppingTime)
}

func (c *Catalogue) mustLoc(id StoreID) Location {
	s, _ := c.Store(id)
	return s.Location
}

func TestExpander_SuccessorsExcludeDuplicateStores(t *testing.T) {
	c := twoStoreCatalogue()
	exp := NewModeA(c, Location{X: 0, Y: 0}, Location{X: 6, Y: 0})

	cand := RouteCandidate{Stores: []StoreID{"near", "far"}, ShoppingTime: 9}
	for _, succ := range exp.Successors(cand) {
		assert.False(t, hasDuplicates(succ.Stores))
	}
}

func TestExpander_ModeBReordersPermutationForMinimalTime(t *testing.T) {
	// Three collinear stores where the as-generated order is not
	// time-optimal; Mode B's permutation pass must find the shorter order.
	stores := map[StoreID]*Store{
		"x": store("x", Location{X: 10, Y: 0}, map[ProductID]float64{"p": 1}, map[ProductID]int{"p": 1}),
		"y": store("y", Location{X: 1, Y: 0}, map[ProductID]float64{"p": 1}, map[ProductID]int{"p": 1}),
		"z": store("z", Location{X: 5, Y: 0}, map[ProductID]float64{"p": 1}, map[ProductID]int{"p": 1}),
	}
	travel := TravelMatrix{}
	travel.Set("x", "y", 9)
	travel.Set("x", "z", 5)
	travel.Set("y", "z", 4)
	c := NewCatalogue(stores, travel)
	c.Precompute()

	exp := NewModeB(c, Location{X: 0, Y: 0}, Location{X: 11, Y: 0})
	best := exp.bestPermutation([]StoreID{"x", "y", "z"})
	assert.Equal(t, []StoreID{"y", "z", "x"}, best.Stores)
}
