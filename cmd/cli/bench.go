package main

import (
	"fmt"
	"time"

	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
	"github.com/spf13/cobra"
)

var benchRuns int

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the skyline search against synthetic grid data",
	Long: `Builds a synthetic 25-store grid catalogue (the same layout used by the
reference implementation's solver benchmark: a 5x5 grid of stores each
carrying a subset of 20 products) and times repeated skyline searches for a
fixed 5-item shopping list.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 10, "number of timed solve runs")
}

// syntheticGridCatalogue reproduces the reference benchmark's fixture: 25
// stores laid out on a 5x5 grid with 10-unit spacing, each carrying a subset
// of 20 products selected by (j%5==i%5 || j%7==i%7), priced at
// 5.0 + ((i*j)%10), with 100 units of inventory per offered product.
func syntheticGridCatalogue() *skyline.Catalogue {
	const gridSize = 5
	const numProducts = 20

	stores := make(map[skyline.StoreID]*skyline.Store, gridSize*gridSize)
	for i := 0; i < gridSize*gridSize; i++ {
		id := skyline.StoreID(fmt.Sprintf("store-%d", i))
		loc := skyline.Location{X: float64(i%gridSize) * 10.0, Y: float64(i/gridSize) * 10.0}

		products := make(map[skyline.ProductID]skyline.Product)
		inventory := make(map[skyline.ProductID]int)
		for j := 1; j <= numProducts; j++ {
			if j%5 != i%5 && j%7 != i%7 {
				continue
			}
			pid := skyline.ProductID(fmt.Sprintf("product-%d", j))
			products[pid] = skyline.Product{Name: string(pid), UnitCost: 5.0 + float64((i*j)%10)}
			inventory[pid] = 100
		}

		stores[id] = &skyline.Store{ID: id, Location: loc, Products: products, Inventory: inventory}
	}

	travel := euclideanTravelMatrix(stores)
	catalogue := skyline.NewCatalogue(stores, travel)
	catalogue.Precompute()
	return catalogue
}

func syntheticShoppingList() *skyline.ShoppingList {
	items := make(map[skyline.ProductID]int, 5)
	for j := 1; j <= 5; j++ {
		items[skyline.ProductID(fmt.Sprintf("product-%d", j))] = 1
	}
	return &skyline.ShoppingList{Items: items}
}

func runBench(cmd *cobra.Command, args []string) error {
	catalogue := syntheticGridCatalogue()
	list := syntheticShoppingList()
	shopper := skyline.Location{X: 0, Y: 0}
	customer := skyline.Location{X: 50, Y: 50}

	var total time.Duration
	var best time.Duration
	for i := 0; i < benchRuns; i++ {
		start := time.Now()
		out, err := skyline.SolveSkyline(catalogue, list, shopper, customer, 50)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("solve run %d: %w", i, err)
		}
		total += elapsed
		if best == 0 || elapsed < best {
			best = elapsed
		}
		logger.Debug().Int("run", i).Dur("elapsed", elapsed).Int("skyline_size", len(out.Routes)).Msg("bench run")
	}

	avg := total / time.Duration(benchRuns)
	logger.Info().
		Int("runs", benchRuns).
		Dur("avg", avg).
		Dur("best", best).
		Msg("skyline solve benchmark complete")

	fmt.Printf("runs=%d avg=%s best=%s\n", benchRuns, avg, best)
	return nil
}
