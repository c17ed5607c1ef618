package skyline

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// fulfilNode is the C5 state-space key: the store currently occupied plus
// the canonical (sorted by ProductID) residual demand still outstanding.
type fulfilNode struct {
	store    StoreID
	residual string // canonical residualKey of the residual map
}

// residualMap is a mutable per-product remaining-quantity snapshot. It is
// always canonicalized (sorted) via residualKey before being used as part of
// a composite Dijkstra state key (spec §4.3/§9).
type residualMap map[ProductID]int

func residualKey(r residualMap) string {
	keys := make([]ProductID, 0, len(r))
	for p := range r {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var b strings.Builder
	for _, p := range keys {
		b.WriteString(string(p))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(r[p]))
		b.WriteByte('|')
	}
	return b.String()
}

func (r residualMap) allZero() bool {
	for _, q := range r {
		if q > 0 {
			return false
		}
	}
	return true
}

// contribution returns the residual left after store s supplies as much of
// each outstanding product as its inventory allows, bounded by what's still
// needed. It never mutates r.
func contribution(s *Store, r residualMap) residualMap {
	next := make(residualMap, len(r))
	for p, need := range r {
		take := s.AvailableQty(p)
		if take > need {
			take = need
		}
		next[p] = need - take
	}
	return next
}

func startingResidual(l *ShoppingList) residualMap {
	r := make(residualMap, len(l.Items))
	for p, q := range l.Items {
		r[p] = q
	}
	return r
}

// contributes reports whether s carries positive inventory of at least one
// product still outstanding in r.
func contributes(s *Store, r residualMap) bool {
	for p, need := range r {
		if need > 0 && s.AvailableQty(p) > 0 {
			return true
		}
	}
	return false
}

// FindMinTimeRoute runs C5: the state-space Dijkstra over (store, residual
// demand) that finds the minimum-shopping-time route fulfilling l, seeded
// from shopper and finished at customer. It returns ok=false when the whole
// catalogue cannot cover l (the feasibility precheck is fixed to sum
// inventory across the whole catalogue, not any candidate-store subset —
// spec §4.3/§9).
func FindMinTimeRoute(c *Catalogue, l *ShoppingList, shopper, customer Location) (route []StoreID, shoppingTime float64, ok bool) {
	if len(l.Items) == 0 {
		return nil, Distance(shopper, customer), true
	}
	if !c.FeasibleAgainstCatalogue(l) {
		return nil, 0, false
	}

	dist := map[fulfilNode]float64{}
	parent := map[fulfilNode]fulfilNode{}
	hasParent := map[fulfilNode]bool{}
	visited := map[fulfilNode]bool{}
	nodeResidualOf := map[fulfilNode]residualMap{}

	pq := newPriorityQueue[fulfilNode]()

	initial := startingResidual(l)
	for _, sid := range c.StoreIDs() {
		s, _ := c.Store(sid)
		if !contributes(s, initial) {
			continue
		}
		res := contribution(s, initial)
		node := fulfilNode{store: sid, residual: residualKey(res)}
		d := Distance(shopper, s.Location)
		if prev, ok := dist[node]; !ok || legLess(d, prev) {
			dist[node] = d
			nodeResidualOf[node] = res
			pq.push(node, d)
		}
	}

	travel := c.Travel()

	bestTerminalDist := -1.0
	haveBest := false
	var bestNode fulfilNode

	for {
		node, d, okPop := pq.pop()
		if !okPop {
			break
		}
		if visited[node] {
			continue
		}
		if haveBest && legLess(bestTerminalDist, d) {
			break
		}
		visited[node] = true

		res := nodeResidualOf[node]
		if res.allZero() {
			s, _ := c.Store(node.store)
			total := d + Distance(s.Location, customer)
			if !haveBest || legLess(total, bestTerminalDist) {
				haveBest = true
				bestTerminalDist = total
				bestNode = node
			}
			// A terminal node can still be expanded further in principle,
			// but doing so can only add nonnegative distance without
			// reducing an already-zero residual, so it is never
			// beneficial. Skip expansion for terminal nodes.
			continue
		}

		for _, tid := range c.StoreIDs() {
			if tid == node.store {
				continue
			}
			if !contributes(mustStore(c, tid), res) {
				// Visiting a store that contributes nothing to the
				// outstanding residual can never improve on staying put;
				// pruning it changes no optimal answer (see cost.go's
				// FeasibleOverRoute doc for the non-sequential-depletion
				// rationale this relies on).
				continue
			}
			w := travel.Between(node.store, tid)
			if math.IsInf(w, 1) || math.IsNaN(w) {
				// Unreachable (or non-finite) leg; prune silently (spec §4.9).
				continue
			}
			nres := contribution(mustStore(c, tid), res)
			next := fulfilNode{store: tid, residual: residualKey(nres)}
			nd := d + w
			if prev, ok := dist[next]; !ok || legLess(nd, prev) {
				dist[next] = nd
				nodeResidualOf[next] = nres
				parent[next] = node
				hasParent[next] = true
				pq.push(next, nd)
			}
		}
	}

	if !haveBest {
		return nil, 0, false
	}

	var stores []StoreID
	cur := bestNode
	for {
		stores = append(stores, cur.store)
		p, ok := hasParent[cur]
		if !ok || !p {
			break
		}
		cur = parent[cur]
	}
	for i, j := 0, len(stores)-1; i < j; i, j = i+1, j-1 {
		stores[i], stores[j] = stores[j], stores[i]
	}
	return stores, bestTerminalDist, true
}

func mustStore(c *Catalogue, id StoreID) *Store {
	s, _ := c.Store(id)
	return s
}
