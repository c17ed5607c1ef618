package skyline

import "math"

// maxPermuteStores bounds Mode B's brute-force permutation reorder (spec
// §9): above this many stores, the as-generated order is kept rather than
// reordered, since k! becomes impractical well before the search space
// itself does.
const maxPermuteStores = 8

// Expander generates successor RouteCandidates from a given candidate (C7).
// Mode A and Mode B share the append/swap generation logic; Mode B adds a
// brute-force reorder pass.
type Expander struct {
	catalogue *Catalogue
	shopper   Location
	customer  Location
	reorder   bool // false = Mode A, true = Mode B
}

// NewModeA returns the detour-based append/swap expander (no reordering).
func NewModeA(c *Catalogue, shopper, customer Location) *Expander {
	return &Expander{catalogue: c, shopper: shopper, customer: customer, reorder: false}
}

// NewModeB returns the append/swap expander with brute-force permutation
// reordering of the resulting store set.
func NewModeB(c *Catalogue, shopper, customer Location) *Expander {
	return &Expander{catalogue: c, shopper: shopper, customer: customer, reorder: true}
}

func (e *Expander) storeLoc(id StoreID) Location {
	s, _ := e.catalogue.Store(id)
	return s.Location
}

func (e *Expander) startLeg(id StoreID) float64 {
	return Distance(e.shopper, e.storeLoc(id))
}

func (e *Expander) endLeg(id StoreID) float64 {
	return Distance(e.storeLoc(id), e.customer)
}

func (e *Expander) legBetween(a, b StoreID) float64 {
	return e.catalogue.Travel().Between(a, b)
}

// minDetour returns the not-yet-visited store with the smallest leg distance
// from 'from', excluding any store already in 'visited'.
func (e *Expander) minDetour(from StoreID, visited map[StoreID]bool) (StoreID, float64, bool) {
	var best StoreID
	bestDist := math.Inf(1)
	found := false
	for _, sid := range e.catalogue.StoreIDs() {
		if visited[sid] {
			continue
		}
		d := e.legBetween(from, sid)
		if !found || legLess(d, bestDist) {
			best, bestDist, found = sid, d, true
		}
	}
	return best, bestDist, found
}

// minDetourFromShopper is minDetour's shopper-start analogue, used only for
// seeding an empty candidate.
func (e *Expander) minDetourFromShopper(visited map[StoreID]bool) (StoreID, float64, bool) {
	var best StoreID
	bestDist := math.Inf(1)
	found := false
	for _, sid := range e.catalogue.StoreIDs() {
		if visited[sid] {
			continue
		}
		d := e.startLeg(sid)
		if !found || legLess(d, bestDist) {
			best, bestDist, found = sid, d, true
		}
	}
	return best, bestDist, found
}

// nextMinDetour returns the not-yet-visited store offering the next-larger
// leg distance from 'from' strictly above 'exclude's own distance, i.e. the
// runner-up detour candidate used by the swap transition.
func (e *Expander) nextMinDetour(from StoreID, exclude StoreID, visited map[StoreID]bool) (StoreID, float64, bool) {
	excludeDist := e.legBetween(from, exclude)
	var best StoreID
	bestDist := math.Inf(1)
	found := false
	for _, sid := range e.catalogue.StoreIDs() {
		if sid == exclude || visited[sid] {
			continue
		}
		d := e.legBetween(from, sid)
		if !legLess(excludeDist, d) {
			continue // not strictly larger than the excluded store's own leg
		}
		if !found || legLess(d, bestDist) {
			best, bestDist, found = sid, d, true
		}
	}
	return best, bestDist, found
}

// Successors returns every successor RouteCandidate of cand under this
// expander's mode, with duplicate-store and infinite-time successors
// already discarded (spec §4.5).
func (e *Expander) Successors(cand RouteCandidate) []RouteCandidate {
	var out []RouteCandidate

	if len(cand.Stores) == 0 {
		if succ, ok := e.seed(); ok {
			out = append(out, succ)
		}
		return e.finish(out)
	}

	visited := map[StoreID]bool{}
	for _, s := range cand.Stores {
		visited[s] = true
	}

	last := cand.Stores[len(cand.Stores)-1]
	if appended, ok := e.appendStore(cand, visited, last); ok {
		out = append(out, appended)
	}

	if len(cand.Stores) >= 1 {
		if swapped, ok := e.swapLast(cand, visited); ok {
			out = append(out, swapped)
		}
	}

	return e.finish(out)
}

// seed builds the singleton candidate seeded from the shopper's MinDetour
// store. Its shopping_time is always computed in full — dist(shopper,
// first) + dist(last, customer) — never left at its zero-initialised
// default. The reference implementation left shopping_time at 0 here; this
// is a fixed defect (spec §4.5/§9).
func (e *Expander) seed() (RouteCandidate, bool) {
	store, _, found := e.minDetourFromShopper(map[StoreID]bool{})
	if !found {
		return RouteCandidate{}, false
	}
	t := e.startLeg(store) + e.endLeg(store)
	return RouteCandidate{Stores: []StoreID{store}, ShoppingTime: t}, true
}

// appendStore forms a new candidate by appending the MinDetour store
// relative to the current last store, updating shopping_time incrementally:
// subtract the old last->customer leg, add last->new and new->customer.
func (e *Expander) appendStore(cand RouteCandidate, visited map[StoreID]bool, last StoreID) (RouteCandidate, bool) {
	next, detour, found := e.minDetour(last, visited)
	if !found {
		return RouteCandidate{}, false
	}
	newTime := cand.ShoppingTime - e.endLeg(last) + detour + e.endLeg(next)
	stores := append(append([]StoreID{}, cand.Stores...), next)
	return RouteCandidate{Stores: stores, ShoppingTime: newTime}, true
}

// swapLast replaces the last store with the NextMinDetour store relative to
// the second-to-last store (or the shopper, if the route has only one
// store), updating shopping_time incrementally.
func (e *Expander) swapLast(cand RouteCandidate, visited map[StoreID]bool) (RouteCandidate, bool) {
	last := cand.Stores[len(cand.Stores)-1]
	n := len(cand.Stores)

	var from StoreID
	var oldLegFromPrev float64
	var fromShopper bool
	if n >= 2 {
		from = cand.Stores[n-2]
		oldLegFromPrev = e.legBetween(from, last)
	} else {
		fromShopper = true
		oldLegFromPrev = e.startLeg(last)
	}

	priorVisited := map[StoreID]bool{}
	for k, v := range visited {
		priorVisited[k] = v
	}
	delete(priorVisited, last)

	var repl StoreID
	var newLeg float64
	var found bool
	if fromShopper {
		repl, newLeg, found = e.nextDetourFromShopper(last, priorVisited)
	} else {
		repl, newLeg, found = e.nextMinDetour(from, last, priorVisited)
	}
	if !found {
		return RouteCandidate{}, false
	}

	newTime := cand.ShoppingTime - oldLegFromPrev - e.endLeg(last) + newLeg + e.endLeg(repl)
	stores := append([]StoreID{}, cand.Stores[:n-1]...)
	stores = append(stores, repl)
	return RouteCandidate{Stores: stores, ShoppingTime: newTime}, true
}

func (e *Expander) nextDetourFromShopper(exclude StoreID, visited map[StoreID]bool) (StoreID, float64, bool) {
	excludeDist := e.startLeg(exclude)
	var best StoreID
	bestDist := math.Inf(1)
	found := false
	for _, sid := range e.catalogue.StoreIDs() {
		if sid == exclude || visited[sid] {
			continue
		}
		d := e.startLeg(sid)
		if !legLess(excludeDist, d) {
			continue
		}
		if !found || legLess(d, bestDist) {
			best, bestDist, found = sid, d, true
		}
	}
	return best, bestDist, found
}

// finish discards infinite/duplicate successors and, for Mode B, reorders
// each survivor's store multiset to minimize shopping_time.
func (e *Expander) finish(cands []RouteCandidate) []RouteCandidate {
	out := cands[:0]
	for _, c := range cands {
		if hasDuplicates(c.Stores) {
			continue
		}
		if math.IsInf(c.ShoppingTime, 1) || math.IsNaN(c.ShoppingTime) {
			continue
		}
		if e.reorder {
			c = e.bestPermutation(c.Stores)
		}
		out = append(out, c)
	}
	return out
}

func hasDuplicates(stores []StoreID) bool {
	seen := map[StoreID]bool{}
	for _, s := range stores {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}

// bestPermutation reorders stores by brute-force permutation (anchored at
// shopper and customer) to minimize total shopping_time, per Mode B (spec
// §4.5/§9). Above maxPermuteStores it keeps the input order unchanged.
func (e *Expander) bestPermutation(stores []StoreID) RouteCandidate {
	if len(stores) > maxPermuteStores {
		return RouteCandidate{Stores: stores, ShoppingTime: e.routeTime(stores)}
	}
	best := append([]StoreID{}, stores...)
	bestTime := e.routeTime(best)
	perm := append([]StoreID{}, stores...)
	permute(perm, 0, func(p []StoreID) {
		t := e.routeTime(p)
		if legLess(t, bestTime) {
			bestTime = t
			best = append([]StoreID{}, p...)
		}
	})
	return RouteCandidate{Stores: best, ShoppingTime: bestTime}
}

func (e *Expander) routeTime(stores []StoreID) float64 {
	if len(stores) == 0 {
		return Distance(e.shopper, e.customer)
	}
	total := e.startLeg(stores[0])
	for i := 1; i < len(stores); i++ {
		total += e.legBetween(stores[i-1], stores[i])
	}
	total += e.endLeg(stores[len(stores)-1])
	return total
}

// permute calls visit with every permutation of s[k:] in place (recursive
// swap, then swap back), leaving s restored to its original order on return.
func permute(s []StoreID, k int, visit func([]StoreID)) {
	if k == len(s) {
		visit(s)
		return
	}
	for i := k; i < len(s); i++ {
		s[k], s[i] = s[i], s[k]
		permute(s, k+1, visit)
		s[k], s[i] = s[i], s[k]
	}
}
