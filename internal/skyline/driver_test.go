package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSkyline_RejectsUnprecomputedCatalogue(t *testing.T) {
	c := NewCatalogue(map[StoreID]*Store{}, nil)
	_, err := SolveSkyline(c, listOf(map[ProductID]int{}), Location{}, Location{}, 10)
	assert.ErrorIs(t, err, ErrNotPrecomputed)
}

func TestSolveSkyline_EmptyListReturnsDirectTripOnly(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 10, Y: 0}

	res, err := SolveSkyline(c, listOf(map[ProductID]int{}), shopper, customer, 10)
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Nil(t, res.Routes[0].Stores)
	assert.Equal(t, Distance(shopper, customer), res.Routes[0].ShoppingTime)
	assert.Equal(t, 0.0, res.Routes[0].ShoppingCost)
}

func TestSolveSkyline_InfeasibleDemandReturnsEmptySkyline(t *testing.T) {
	c := twoStoreCatalogue()
	res, err := SolveSkyline(c, listOf(map[ProductID]int{"milk": 10_000}), Location{}, Location{X: 1, Y: 1}, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Routes)
}

func TestSolveSkyline_ProducesNonDominatedTimeVsCostTradeoff(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 6, Y: 0}

	res, err := SolveSkyline(c, listOf(map[ProductID]int{"milk": 4}), shopper, customer, 50)
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)

	for i := range res.Routes {
		for j := range res.Routes {
			if i == j {
				continue
			}
			assert.False(t, dominates(res.Routes[i], res.Routes[j]))
		}
	}

	// Every route's cost must be at or above the catalogue lower bound.
	for _, r := range res.Routes {
		assert.GreaterOrEqual(t, r.ShoppingCost, res.LowerBound)
	}
}

func TestSolveSkyline_IsDeterministicAcrossRuns(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 6, Y: 0}
	list := listOf(map[ProductID]int{"milk": 4})

	first, err := SolveSkyline(c, list, shopper, customer, 50)
	require.NoError(t, err)
	second, err := SolveSkyline(c, list, shopper, customer, 50)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Routes, second.Routes)
}

func TestSolveSkylineWithConfig_RejectsInvalidConfig(t *testing.T) {
	c := twoStoreCatalogue()
	_, err := SolveSkylineWithConfig(c, listOf(map[ProductID]int{}), Location{}, Location{}, &Config{
		StagnationThreshold: 10,
		MaxPermuteStores:    maxPermuteStores,
		Modes:               []string{"C"},
	})
	assert.ErrorAs(t, err, &ErrInvalidConfig{})
}

func TestSolveSkylineWithConfig_SingleModeStillFindsSkyline(t *testing.T) {
	c := twoStoreCatalogue()
	shopper := Location{X: 0, Y: 0}
	customer := Location{X: 6, Y: 0}

	full, err := SolveSkylineWithConfig(c, listOf(map[ProductID]int{"milk": 4}), shopper, customer, &Config{
		StagnationThreshold: 50, MaxPermuteStores: maxPermuteStores, Modes: []string{"A", "B"},
	})
	require.NoError(t, err)

	modeAOnly, err := SolveSkylineWithConfig(c, listOf(map[ProductID]int{"milk": 4}), shopper, customer, &Config{
		StagnationThreshold: 50, MaxPermuteStores: maxPermuteStores, Modes: []string{"A"},
	})
	require.NoError(t, err)

	require.NotEmpty(t, modeAOnly.Routes)
	assert.LessOrEqual(t, len(modeAOnly.Routes), len(full.Routes))
}

func TestSolveSkyline_TerminatesEarlyOnLowerBoundMatch(t *testing.T) {
	c := twoStoreCatalogue()
	list := listOf(map[ProductID]int{"milk": 2})

	// Both workers emit R0 first, so the second copy counts as one
	// non-improving emission; a threshold of 2 leaves room for the cost-C*
	// route that each worker emits next.
	res, err := SolveSkyline(c, list, Location{X: 1, Y: 0}, Location{X: 1, Y: -1}, 2)
	require.NoError(t, err)
	require.NotEmpty(t, res.Routes)

	cheapest := res.Routes[0].ShoppingCost
	for _, r := range res.Routes {
		if r.ShoppingCost < cheapest {
			cheapest = r.ShoppingCost
		}
	}
	assert.Equal(t, res.LowerBound, cheapest)
}
