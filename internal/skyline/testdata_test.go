package skyline

// store is a small builder helper kept local to the test package; it is not
// part of the public API.
func store(id StoreID, loc Location, prices map[ProductID]float64, inv map[ProductID]int) *Store {
	products := make(map[ProductID]Product, len(prices))
	for p, cost := range prices {
		products[p] = Product{Name: string(p), UnitCost: cost}
	}
	return &Store{ID: id, Location: loc, Products: products, Inventory: inv}
}

// twoStoreCatalogue builds the fixture used across several scenarios: two
// stores on either side of a shopper->customer line, one cheap-but-far, one
// pricier-but-close, each carrying a single product "milk".
func twoStoreCatalogue() *Catalogue {
	stores := map[StoreID]*Store{
		"near": store("near", Location{X: 1, Y: 0},
			map[ProductID]float64{"milk": 2.00},
			map[ProductID]int{"milk": 10}),
		"far": store("far", Location{X: 5, Y: 0},
			map[ProductID]float64{"milk": 1.00},
			map[ProductID]int{"milk": 10}),
	}
	travel := TravelMatrix{}
	travel.Set("near", "far", 4)
	c := NewCatalogue(stores, travel)
	c.Precompute()
	return c
}

func listOf(items map[ProductID]int) *ShoppingList {
	return &ShoppingList{Items: items}
}
