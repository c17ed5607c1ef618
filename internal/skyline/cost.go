package skyline

import (
	"math"
	"sort"
)

// MinCost computes the minimum purchase cost of fulfilling l using only the
// stores in route, under each store's inventory (C4, spec §4.2). It returns
// +Inf iff route cannot fulfil l.
//
// Each product's allocation is independent of every other product's, so the
// per-product greedy cheapest-first fill is optimal: there is no cross
// product substitution to reason about, and a unit consumed for product p at
// store s never competes with product q's allocation.
func MinCost(c *Catalogue, route []StoreID, l *ShoppingList) float64 {
	total := 0.0
	for _, item := range l.SortedItems() {
		cost, ok := minCostForProduct(c, route, item.Product, item.Quantity)
		if !ok {
			return math.Inf(1)
		}
		total += cost
	}
	return total
}

// minCostForProduct fills qty units of p greedily from the cheapest stores
// in route that carry it, and reports whether qty could be fully sourced.
func minCostForProduct(c *Catalogue, route []StoreID, p ProductID, qty int) (float64, bool) {
	type tuple struct {
		store StoreID
		cost  float64
		inv   int
	}
	var tuples []tuple
	for _, sid := range route {
		s, ok := c.Store(sid)
		if !ok {
			continue
		}
		inv := s.AvailableQty(p)
		if inv <= 0 {
			continue
		}
		cost, ok := s.UnitCost(p)
		if !ok {
			continue
		}
		tuples = append(tuples, tuple{store: sid, cost: cost, inv: inv})
	}
	sort.Slice(tuples, func(i, j int) bool {
		if tuples[i].cost != tuples[j].cost {
			return tuples[i].cost < tuples[j].cost
		}
		return tuples[i].store < tuples[j].store
	})

	remaining := qty
	total := 0.0
	for _, t := range tuples {
		if remaining <= 0 {
			break
		}
		take := t.inv
		if take > remaining {
			take = remaining
		}
		total += float64(take) * t.cost
		remaining -= take
	}
	if remaining > 0 {
		return 0, false
	}
	return total, true
}

// LowerBound computes C*, the cheapest achievable cost for l when geometry
// is ignored entirely: C4's greedy procedure applied to every store in the
// catalogue at once (C6, spec §4.4). It is a hard lower bound on the
// shopping_cost of any feasible route and is used by the parallel driver as
// an early-termination signal.
func LowerBound(c *Catalogue, l *ShoppingList) float64 {
	return MinCost(c, c.StoreIDs(), l)
}

// FeasibleOverRoute reports whether the stores in route, considered
// together without sequential inventory depletion, carry enough aggregate
// inventory of every item in l. This mirrors the reference's
// satisfies_list_with_inventory: it sums per-store inventory across route
// once, never subtracting an earlier store's contribution before evaluating
// a later one, because time-planning only needs SOME purchase to occur at
// each visited store — cost-planning (MinCost, above) separately computes
// the optimal post-hoc allocation. This is intentional, not a bug (spec §9).
func FeasibleOverRoute(c *Catalogue, route []StoreID, l *ShoppingList) bool {
	totals := make(map[ProductID]int, len(l.Items))
	for _, sid := range route {
		s, ok := c.Store(sid)
		if !ok {
			continue
		}
		for p := range l.Items {
			totals[p] += s.AvailableQty(p)
		}
	}
	for p, qty := range l.Items {
		if totals[p] < qty {
			return false
		}
	}
	return true
}
