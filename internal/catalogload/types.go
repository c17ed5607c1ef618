// Package catalogload builds a skyline.Catalogue's store snapshot from flat
// catalogue files (CSV or XLSX), one row per (store, product) offer, mirroring
// the column-mapping-driven row normalization the teacher's own internal/parsers
// packages use for price-list ingestion (C11).
package catalogload

import "github.com/zoukba0014/personal-shopper-optimal/internal/skyline"

// Row is one normalized (store, product) offer: a single catalogue line.
type Row struct {
	StoreID   skyline.StoreID
	StoreX    float64
	StoreY    float64
	ProductID skyline.ProductID
	Product   string
	UnitCost  float64
	Quantity  int
}

// RowError reports why a single row was rejected, keeping the rest of the
// file's rows loadable (spec §11's "partial failure" row convention,
// mirroring types.ParseError's RowNumber/Field/Message shape).
type RowError struct {
	RowNumber int
	Field     string
	Message   string
}

func (e RowError) Error() string {
	return e.Message
}

// Result is the outcome of loading a catalogue file: the rows that parsed
// cleanly plus any rows that didn't.
type Result struct {
	Rows   []Row
	Errors []RowError
}

// BuildStores groups loaded rows into skyline.Store snapshots keyed by
// StoreID, the input NewCatalogue expects.
func BuildStores(rows []Row) map[skyline.StoreID]*skyline.Store {
	stores := make(map[skyline.StoreID]*skyline.Store)
	for _, r := range rows {
		s, ok := stores[r.StoreID]
		if !ok {
			s = &skyline.Store{
				ID:        r.StoreID,
				Location:  skyline.Location{X: r.StoreX, Y: r.StoreY},
				Products:  map[skyline.ProductID]skyline.Product{},
				Inventory: map[skyline.ProductID]int{},
			}
			stores[r.StoreID] = s
		}
		s.Products[r.ProductID] = skyline.Product{Name: r.Product, UnitCost: r.UnitCost}
		s.Inventory[r.ProductID] += r.Quantity
	}
	return stores
}
