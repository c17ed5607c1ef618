package skyline

import (
	"errors"
	"sort"
)

// ErrNotPrecomputed is returned when the engine is queried before Precompute
// has built the inverted index. It is a contract violation, not an in-band
// search failure, and is the one error the core surfaces to callers.
var ErrNotPrecomputed = errors.New("skyline: catalogue not precomputed")

// PricedOffer is one (store, unit cost) entry in a product's inverted list,
// restricted to stores holding positive inventory of that product.
type PricedOffer struct {
	Store    StoreID
	UnitCost float64
}

// Catalogue is the read-mostly snapshot of stores, prices and inventory (C1)
// together with its derived inverted index (C3). It is constructed once via
// NewCatalogue and must be finalized with Precompute before any query.
//
// A Catalogue is logically immutable after Precompute and safe for
// concurrent read access by multiple search workers without further locking.
type Catalogue struct {
	stores map[StoreID]*Store
	travel TravelMatrix

	// inverted maps each product to its offers sorted ascending by unit
	// cost, ties broken by StoreID for determinism (spec §4.1/§4.2).
	inverted map[ProductID][]PricedOffer

	ready bool
}

// NewCatalogue builds a Catalogue from a store snapshot and a symmetric
// travel-time map. Precompute must be called before the catalogue is used
// in a query.
func NewCatalogue(stores map[StoreID]*Store, travelTimes TravelMatrix) *Catalogue {
	cp := make(map[StoreID]*Store, len(stores))
	for id, s := range stores {
		cp[id] = s
	}
	if travelTimes == nil {
		travelTimes = TravelMatrix{}
	}
	return &Catalogue{stores: cp, travel: travelTimes}
}

// Precompute builds the inverted index (C3). The engine must not be queried
// before this is called (spec §6).
func (c *Catalogue) Precompute() {
	c.inverted = buildInvertedIndex(c.stores)
	c.ready = true
}

// Ready reports whether Precompute has run.
func (c *Catalogue) Ready() bool { return c.ready }

// Store returns the store with the given id, if present.
func (c *Catalogue) Store(id StoreID) (*Store, bool) {
	s, ok := c.stores[id]
	return s, ok
}

// StoreIDs returns every store id in the catalogue, in no particular order.
func (c *Catalogue) StoreIDs() []StoreID {
	ids := make([]StoreID, 0, len(c.stores))
	for id := range c.stores {
		ids = append(ids, id)
	}
	return ids
}

// Offers returns the inverted list for a product: stores carrying it with
// positive inventory, sorted ascending by unit cost. Returns nil if the
// product is carried nowhere.
func (c *Catalogue) Offers(p ProductID) []PricedOffer {
	return c.inverted[p]
}

// Travel returns the TravelMatrix backing this catalogue.
func (c *Catalogue) Travel() TravelMatrix { return c.travel }

func buildInvertedIndex(stores map[StoreID]*Store) map[ProductID][]PricedOffer {
	byProduct := map[ProductID][]PricedOffer{}
	for id, s := range stores {
		for p, qty := range s.Inventory {
			if qty <= 0 {
				continue
			}
			cost, ok := s.UnitCost(p)
			if !ok {
				continue
			}
			byProduct[p] = append(byProduct[p], PricedOffer{Store: id, UnitCost: cost})
		}
	}
	for p, offers := range byProduct {
		sort.Slice(offers, func(i, j int) bool {
			if offers[i].UnitCost != offers[j].UnitCost {
				return offers[i].UnitCost < offers[j].UnitCost
			}
			return offers[i].Store < offers[j].Store
		})
		byProduct[p] = offers
	}
	return byProduct
}

// AggregateInventory sums inventory for a product across the whole
// catalogue, ignoring geometry or route membership. Used by C5's feasibility
// precheck (spec §4.3, the fixed whole-catalogue variant).
func (c *Catalogue) AggregateInventory(p ProductID) int {
	total := 0
	for _, offer := range c.inverted[p] {
		s := c.stores[offer.Store]
		total += s.AvailableQty(p)
	}
	return total
}

// FeasibleAgainstCatalogue reports whether the whole catalogue carries
// enough aggregate inventory of every item in l to satisfy it. This check is
// deliberately whole-catalogue rather than restricted to any particular
// route/candidate-store subset, matching C6's find_min_cost_route style
// feasibility test (spec §4.3, §9 bug fix).
func (c *Catalogue) FeasibleAgainstCatalogue(l *ShoppingList) bool {
	for p, qty := range l.Items {
		if c.AggregateInventory(p) < qty {
			return false
		}
	}
	return true
}
