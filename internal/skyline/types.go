// Package skyline implements the Personal Shopper's Dilemma with Inventory
// (PSD-I) skyline search: given a shopping list, a shopper start location, a
// customer delivery location, and a catalogue of stores with priced finite
// inventory, it computes the Pareto frontier of shopping routes non-dominated
// in (total travel time, total shopping cost).
package skyline

import "sort"

// ProductID identifies a product across the catalogue.
type ProductID string

// StoreID identifies a store across the catalogue.
type StoreID string

// Location is a planar point. Store-to-store distance is normally supplied by
// a precomputed TravelMatrix; Euclidean distance is used only as the
// shopper/customer to store fallback (see Distance).
type Location struct {
	X float64
	Y float64
}

// Product describes a sellable item and its non-negative unit cost at a
// particular store.
type Product struct {
	Name     string
	UnitCost float64
}

// Store is a single point of sale: its location, the products it carries,
// and per-product inventory. Every ProductID present in Inventory must also
// be present in Products. Inventory is observed but never mutated by the
// search.
type Store struct {
	ID        StoreID
	Location  Location
	Products  map[ProductID]Product
	Inventory map[ProductID]int
}

// UnitCost returns the price a store charges for a product, and whether the
// store carries it at all (regardless of inventory level).
func (s *Store) UnitCost(p ProductID) (float64, bool) {
	prod, ok := s.Products[p]
	if !ok {
		return 0, false
	}
	return prod.UnitCost, true
}

// AvailableQty returns how many units of p the store currently has.
func (s *Store) AvailableQty(p ProductID) int {
	return s.Inventory[p]
}

// ShoppingList maps each requested product to a strictly positive quantity.
// Insertion order is never significant; callers that need a stable iteration
// order should use SortedItems.
type ShoppingList struct {
	Items map[ProductID]int

	// Priority is inert metadata carried through the HTTP/CLI layer for
	// multi-order batch processing. The core search never reads it.
	Priority uint
}

// ListItem is one canonical (product, quantity) pair.
type ListItem struct {
	Product  ProductID
	Quantity int
}

// SortedItems returns the list's items as a sequence sorted ascending by
// ProductID, the canonical form used whenever the list (or a residual
// derived from it) is used as a composite state key.
func (l *ShoppingList) SortedItems() []ListItem {
	items := make([]ListItem, 0, len(l.Items))
	for p, q := range l.Items {
		items = append(items, ListItem{Product: p, Quantity: q})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Product < items[j].Product })
	return items
}

// TotalUnits sums the requested quantities across every product.
func (l *ShoppingList) TotalUnits() int {
	total := 0
	for _, q := range l.Items {
		total += q
	}
	return total
}

// RouteCandidate is an ordered, duplicate-free sequence of stores plus its
// cached travel time. Two candidates are considered the same route iff their
// Stores sequences are equal element-for-element.
type RouteCandidate struct {
	Stores       []StoreID
	ShoppingTime float64
}

// Key returns a string uniquely identifying the store sequence, used as the
// per-worker visited-set key in the parallel driver (C9).
func (r *RouteCandidate) Key() string {
	b := make([]byte, 0, len(r.Stores)*8)
	for i, s := range r.Stores {
		if i > 0 {
			b = append(b, '|')
		}
		b = append(b, s...)
	}
	return string(b)
}

// ShoppingRoute is a RouteCandidate together with its minimum purchase cost
// under C4, the shape actually returned in a skyline.
type ShoppingRoute struct {
	Stores       []StoreID
	ShoppingTime float64
	ShoppingCost float64
}

func (r ShoppingRoute) candidate() RouteCandidate {
	return RouteCandidate{Stores: r.Stores, ShoppingTime: r.ShoppingTime}
}
