package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominates_StrictlyBetterInOneObjective(t *testing.T) {
	a := ShoppingRoute{ShoppingTime: 5, ShoppingCost: 10}
	b := ShoppingRoute{ShoppingTime: 6, ShoppingCost: 10}
	assert.True(t, dominates(a, b))
	assert.False(t, dominates(b, a))
}

func TestDominates_NotComparableWhenBothImprove(t *testing.T) {
	a := ShoppingRoute{ShoppingTime: 5, ShoppingCost: 20}
	b := ShoppingRoute{ShoppingTime: 8, ShoppingCost: 10}
	assert.False(t, dominates(a, b))
	assert.False(t, dominates(b, a))
}

func TestDominates_TieBreaksOnStoreCount(t *testing.T) {
	a := ShoppingRoute{Stores: []StoreID{"a"}, ShoppingTime: 5, ShoppingCost: 10}
	b := ShoppingRoute{Stores: []StoreID{"a", "b"}, ShoppingTime: 5, ShoppingCost: 10}
	assert.True(t, dominates(a, b))
}

func TestEqualRoute_DistinctStoreSequencesAreNotEqual(t *testing.T) {
	a := ShoppingRoute{Stores: []StoreID{"near", "far"}, ShoppingTime: 5, ShoppingCost: 10}
	b := ShoppingRoute{Stores: []StoreID{"far", "near"}, ShoppingTime: 5, ShoppingCost: 10}
	assert.False(t, equalRoute(a, b))
}

func TestSkyline_KeepsBothTiedRoutesWithDifferentStoreSequences(t *testing.T) {
	sk := NewSkyline()
	a := ShoppingRoute{Stores: []StoreID{"near", "far"}, ShoppingTime: 5, ShoppingCost: 10}
	b := ShoppingRoute{Stores: []StoreID{"far", "near"}, ShoppingTime: 5, ShoppingCost: 10}

	require.True(t, sk.Insert(a))
	require.True(t, sk.Insert(b))
	assert.Equal(t, 2, sk.Len(), "tied but distinct store sequences must both survive")
}

func TestSkyline_InsertRejectsDominated(t *testing.T) {
	sk := NewSkyline()
	require.True(t, sk.Insert(ShoppingRoute{ShoppingTime: 5, ShoppingCost: 10}))
	assert.False(t, sk.Insert(ShoppingRoute{ShoppingTime: 6, ShoppingCost: 15}))
	assert.Equal(t, 1, sk.Len())
}

func TestSkyline_InsertEvictsDominated(t *testing.T) {
	sk := NewSkyline()
	require.True(t, sk.Insert(ShoppingRoute{ShoppingTime: 10, ShoppingCost: 10}))
	require.True(t, sk.Insert(ShoppingRoute{ShoppingTime: 5, ShoppingCost: 5}))
	assert.Equal(t, 1, sk.Len())
	assert.Equal(t, 5.0, sk.Routes()[0].ShoppingTime)
}

func TestSkyline_KeepsNonDominatedTradeoffs(t *testing.T) {
	sk := NewSkyline()
	sk.Insert(ShoppingRoute{ShoppingTime: 5, ShoppingCost: 20})
	sk.Insert(ShoppingRoute{ShoppingTime: 10, ShoppingCost: 10})
	assert.Equal(t, 2, sk.Len())

	routes := sk.Routes()
	assert.Equal(t, 5.0, routes[0].ShoppingTime)
	assert.Equal(t, 10.0, routes[1].ShoppingTime)
}

func TestSkyline_PairwiseNonDomination(t *testing.T) {
	sk := NewSkyline()
	sk.Insert(ShoppingRoute{ShoppingTime: 5, ShoppingCost: 20})
	sk.Insert(ShoppingRoute{ShoppingTime: 10, ShoppingCost: 10})
	sk.Insert(ShoppingRoute{ShoppingTime: 1, ShoppingCost: 1})

	routes := sk.Routes()
	for i := range routes {
		for j := range routes {
			if i == j {
				continue
			}
			assert.False(t, dominates(routes[i], routes[j]), "route %d should not dominate route %d", i, j)
		}
	}
}
