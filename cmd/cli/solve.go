package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogload"
	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
	"github.com/spf13/cobra"
)

var (
	solveCatalogueFile string
	solveItems         []string
	solveShopperX      float64
	solveShopperY      float64
	solveCustomerX     float64
	solveCustomerY     float64
	solveStagnation    int
	solveEncoding      string
	solveJSON          bool
	solveTravelCache   string
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the shopping-route skyline against a catalogue file",
	Long: `Load a catalogue (CSV or XLSX), compute store-to-store travel times as
straight-line distance, and print the Pareto frontier of shopping routes
trading off travel time against shopping cost.`,
	Example: `  psd-cli solve --catalogue stores.csv --item milk=2 --item eggs=1 \
    --shopper-x 0 --shopper-y 0 --customer-x 50 --customer-y 50`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveCatalogueFile, "catalogue", "", "path to a catalogue CSV or XLSX file (required)")
	solveCmd.Flags().StringSliceVar(&solveItems, "item", nil, "shopping list item as product=quantity, repeatable")
	solveCmd.Flags().Float64Var(&solveShopperX, "shopper-x", 0, "shopper start X coordinate")
	solveCmd.Flags().Float64Var(&solveShopperY, "shopper-y", 0, "shopper start Y coordinate")
	solveCmd.Flags().Float64Var(&solveCustomerX, "customer-x", 0, "customer delivery X coordinate")
	solveCmd.Flags().Float64Var(&solveCustomerY, "customer-y", 0, "customer delivery Y coordinate")
	solveCmd.Flags().IntVar(&solveStagnation, "stagnation-threshold", 50, "consecutive non-improving emissions before the search stops")
	solveCmd.Flags().StringVar(&solveEncoding, "encoding", "auto", "catalogue CSV source encoding: auto, utf-8, windows-1250, or iso-8859-2")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the skyline as JSON instead of a table")
	solveCmd.Flags().StringVar(&solveTravelCache, "travel-cache", "", "path to a persisted travel-matrix JSON cache file; read if present, otherwise computed and written there")
	solveCmd.MarkFlagRequired("catalogue")
}

func runSolve(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(solveCatalogueFile)
	if err != nil {
		return fmt.Errorf("read catalogue file: %w", err)
	}

	var result catalogload.Result
	switch strings.ToLower(filepath.Ext(solveCatalogueFile)) {
	case ".csv":
		enc, err := parseEncodingFlag(solveEncoding)
		if err != nil {
			return err
		}
		result = catalogload.LoadCSVWithEncoding(content, enc)
	case ".xlsx":
		result, err = catalogload.LoadXLSX(content)
		if err != nil {
			return fmt.Errorf("load xlsx catalogue: %w", err)
		}
	default:
		return fmt.Errorf("unsupported catalogue file extension: %s (want .csv or .xlsx)", solveCatalogueFile)
	}

	summary := catalogload.Summarize(result)
	if summary.FailedRows > 0 {
		logger.Warn().Int("failed_rows", summary.FailedRows).Float64("error_rate", summary.ErrorRate).Msg("catalogue loaded with row errors")
		for _, rowErr := range result.Errors {
			logger.Debug().Int("row", rowErr.RowNumber).Str("field", rowErr.Field).Str("message", rowErr.Message).Msg("skipped row")
		}
	}

	stores := catalogload.BuildStores(result.Rows)
	if len(stores) == 0 {
		return fmt.Errorf("catalogue file contains no usable rows")
	}

	travel, err := loadOrBuildTravelMatrix(stores, solveTravelCache)
	if err != nil {
		return err
	}
	catalogue := skyline.NewCatalogue(stores, travel)
	catalogue.Precompute()

	list, err := parseShoppingList(solveItems)
	if err != nil {
		return err
	}

	shopper := skyline.Location{X: solveShopperX, Y: solveShopperY}
	customer := skyline.Location{X: solveCustomerX, Y: solveCustomerY}

	out, err := skyline.SolveSkyline(catalogue, list, shopper, customer, solveStagnation)
	if err != nil {
		return fmt.Errorf("solve skyline: %w", err)
	}

	logger.Info().
		Int("stores", len(stores)).
		Int("skyline_size", len(out.Routes)).
		Dur("pre_search_elapsed", out.PreSearchElapsed).
		Float64("lower_bound", out.LowerBound).
		Msg("skyline solved")

	if solveJSON {
		return printRoutesJSON(out.Routes)
	}
	printRoutes(out.Routes)
	return nil
}

func parseEncodingFlag(flag string) (catalogload.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return catalogload.EncodingAuto, nil
	case "utf-8", "utf8":
		return catalogload.EncodingUTF8, nil
	case "windows-1250", "windows1250":
		return catalogload.EncodingWindows1250, nil
	case "iso-8859-2", "iso8859-2":
		return catalogload.EncodingISO88592, nil
	default:
		return "", fmt.Errorf("unsupported --encoding %q (want auto, utf-8, windows-1250, or iso-8859-2)", flag)
	}
}

func parseShoppingList(items []string) (*skyline.ShoppingList, error) {
	parsed := make(map[skyline.ProductID]int, len(items))
	for _, item := range items {
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --item %q, want product=quantity", item)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in --item %q: must be a positive integer", item)
		}
		parsed[skyline.ProductID(parts[0])] = qty
	}
	return &skyline.ShoppingList{Items: parsed}, nil
}

// travelCacheEntry is the on-disk JSON shape for a persisted travel matrix:
// skyline.TravelMatrix's map key ([2]StoreID) isn't itself JSON-encodable,
// so entries are flattened to a slice.
type travelCacheEntry struct {
	A    skyline.StoreID `json:"a"`
	B    skyline.StoreID `json:"b"`
	Dist float64         `json:"dist"`
}

// loadOrBuildTravelMatrix reads a persisted travel-matrix cache file if one
// exists at path, otherwise computes straight-line store-to-store distances
// and, when path is non-empty, writes the result there for reuse by a later
// run against the same catalogue.
func loadOrBuildTravelMatrix(stores map[skyline.StoreID]*skyline.Store, path string) (skyline.TravelMatrix, error) {
	if path != "" {
		if content, err := os.ReadFile(path); err == nil {
			var entries []travelCacheEntry
			if err := json.Unmarshal(content, &entries); err != nil {
				return nil, fmt.Errorf("parse travel cache %s: %w", path, err)
			}
			travel := make(skyline.TravelMatrix, len(entries))
			for _, e := range entries {
				travel.Set(e.A, e.B, e.Dist)
			}
			logger.Info().Str("path", path).Int("entries", len(entries)).Msg("loaded travel matrix from cache file")
			return travel, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read travel cache %s: %w", path, err)
		}
	}

	travel := euclideanTravelMatrix(stores)

	if path != "" {
		entries := make([]travelCacheEntry, 0, len(travel))
		for pair, dist := range travel {
			entries = append(entries, travelCacheEntry{A: pair[0], B: pair[1], Dist: dist})
		}
		encoded, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encode travel cache: %w", err)
		}
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return nil, fmt.Errorf("write travel cache %s: %w", path, err)
		}
		logger.Info().Str("path", path).Int("entries", len(entries)).Msg("wrote travel matrix to cache file")
	}

	return travel, nil
}

// euclideanTravelMatrix builds a store-to-store TravelMatrix from straight-line
// distance between store locations. Production deployments should precompute
// road-network distances instead (see internal/roadnet), but this is a
// reasonable default for ad-hoc CLI use against a flat catalogue file.
func euclideanTravelMatrix(stores map[skyline.StoreID]*skyline.Store) skyline.TravelMatrix {
	travel := make(skyline.TravelMatrix)
	ids := make([]skyline.StoreID, 0, len(stores))
	for id := range stores {
		ids = append(ids, id)
	}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			dist := skyline.Distance(stores[a].Location, stores[b].Location)
			travel.Set(a, b, dist)
		}
	}
	return travel
}

func printRoutes(routes []skyline.ShoppingRoute) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "STORES\tTIME\tCOST")
	for _, r := range routes {
		names := make([]string, len(r.Stores))
		for i, s := range r.Stores {
			names[i] = string(s)
		}
		route := strings.Join(names, "->")
		if route == "" {
			route = "(direct)"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", route, r.ShoppingTime, r.ShoppingCost)
	}
}

// jsonRoute is the --json output shape for one skyline entry.
type jsonRoute struct {
	Stores       []skyline.StoreID `json:"stores"`
	ShoppingTime float64           `json:"shopping_time"`
	ShoppingCost float64           `json:"shopping_cost"`
}

func printRoutesJSON(routes []skyline.ShoppingRoute) error {
	out := make([]jsonRoute, len(routes))
	for i, r := range routes {
		out[i] = jsonRoute{Stores: r.Stores, ShoppingTime: r.ShoppingTime, ShoppingCost: r.ShoppingCost}
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode routes as json: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
