package skyline

import "math"

// TravelMatrix holds a symmetric, sparse store-pair distance map (C2).
// Missing entries are treated as +Inf (unreachable), never as zero.
type TravelMatrix map[[2]StoreID]float64

// Set records the distance between a and b (and its symmetric counterpart).
func (m TravelMatrix) Set(a, b StoreID, dist float64) {
	m[[2]StoreID{a, b}] = dist
	m[[2]StoreID{b, a}] = dist
}

// Between returns the travel time between two distinct stores, or +Inf if no
// entry is recorded.
func (m TravelMatrix) Between(a, b StoreID) float64 {
	if a == b {
		return 0
	}
	if d, ok := m[[2]StoreID{a, b}]; ok {
		return d
	}
	return math.Inf(1)
}

// Distance returns the Euclidean distance between two locations. This is the
// fallback used only for shopper/customer <-> store legs (spec §3); store-to
// -store legs always go through a TravelMatrix.
func Distance(a, b Location) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// legLess implements spec §4.9's total order over float64 distances: NaN
// compares as equal to everything (never less), so a priority queue ordered
// by this relation cannot loop forever chasing a NaN "improvement".
func legLess(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a < b
}
