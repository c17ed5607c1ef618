package skyline

import "sort"

// dominates reports whether a dominates b under conventional domination
// (spec §4.6): strictly better in at least one objective, no worse in the
// other, with a store-count tie-break when time and cost are both equal.
func dominates(a, b ShoppingRoute) bool {
	if legLess(a.ShoppingTime, b.ShoppingTime) && !legLess(b.ShoppingCost, a.ShoppingCost) {
		return true
	}
	if !legLess(b.ShoppingTime, a.ShoppingTime) && legLess(a.ShoppingCost, b.ShoppingCost) {
		return true
	}
	if a.ShoppingTime == b.ShoppingTime && a.ShoppingCost == b.ShoppingCost && len(a.Stores) < len(b.Stores) {
		return true
	}
	return false
}

// equalRoute reports whether a and b are the same RouteCandidate: equality is
// by store sequence, not just the objectives it happens to score (spec §3).
// Two distinct routes can tie on (time, cost, store count) without visiting
// the same stores in the same order, and those must not be collapsed.
func equalRoute(a, b ShoppingRoute) bool {
	if a.ShoppingTime != b.ShoppingTime || a.ShoppingCost != b.ShoppingCost {
		return false
	}
	if len(a.Stores) != len(b.Stores) {
		return false
	}
	for i := range a.Stores {
		if a.Stores[i] != b.Stores[i] {
			return false
		}
	}
	return true
}

// Skyline holds the current Pareto frontier of ShoppingRoutes, free of
// conventional domination (C8). It is not safe for concurrent use; the
// parallel driver's aggregator is the sole owner (spec §5).
type Skyline struct {
	routes []ShoppingRoute
}

// NewSkyline returns an empty skyline.
func NewSkyline() *Skyline { return &Skyline{} }

// Insert applies the O(|skyline|) insertion protocol: reject R if any
// existing entry dominates or equals it, otherwise evict everything R
// dominates and insert R. Returns true iff the skyline changed.
func (sk *Skyline) Insert(r ShoppingRoute) bool {
	for _, existing := range sk.routes {
		if dominates(existing, r) || equalRoute(existing, r) {
			return false
		}
	}
	kept := sk.routes[:0]
	for _, existing := range sk.routes {
		if !dominates(r, existing) {
			kept = append(kept, existing)
		}
	}
	sk.routes = append(kept, r)
	return true
}

// Routes returns the current skyline sorted ascending by shopping_time, then
// shopping_cost, then route length (spec §5/§8).
func (sk *Skyline) Routes() []ShoppingRoute {
	out := append([]ShoppingRoute{}, sk.routes...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShoppingTime != out[j].ShoppingTime {
			return out[i].ShoppingTime < out[j].ShoppingTime
		}
		if out[i].ShoppingCost != out[j].ShoppingCost {
			return out[i].ShoppingCost < out[j].ShoppingCost
		}
		return len(out[i].Stores) < len(out[j].Stores)
	})
	return out
}

// Len reports the current skyline size.
func (sk *Skyline) Len() int { return len(sk.routes) }
