package skyline

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Result is the outcome of SolveSkyline: the ordered skyline plus the wall
// time spent computing R0 and C* (spec §6).
type Result struct {
	Routes            []ShoppingRoute
	PreSearchElapsed  time.Duration
	LowerBound        float64
	InitialShoppingTm float64
}

var metricsRecorder *MetricsRecorder

// SetMetricsRecorder installs a package-level metrics recorder used by
// SolveSkyline, mirroring the teacher's InitOptimizers-style package-global
// wiring (internal/handlers/optimize.go). A nil recorder (the default)
// disables metrics recording.
func SetMetricsRecorder(m *MetricsRecorder) {
	metricsRecorder = m
}

type emittedRoute struct {
	route ShoppingRoute
	mode  string
}

// SolveSkyline is the engine's single entry point (spec §6), running both
// expander modes. It requires c to have been precomputed; querying an
// unprepared catalogue is a contract violation, reported via
// ErrNotPrecomputed rather than folded into the in-band empty-skyline
// result.
func SolveSkyline(c *Catalogue, l *ShoppingList, shopper, customer Location, stagnationThreshold int) (Result, error) {
	return SolveSkylineWithConfig(c, l, shopper, customer, &Config{
		StagnationThreshold: stagnationThreshold,
		MaxPermuteStores:    maxPermuteStores,
		Modes:               []string{"A", "B"},
	})
}

// SolveSkylineWithConfig is SolveSkyline with the expander modes gated by
// cfg.Modes (spec §6's mode_selection option), rather than always launching
// both Mode A and Mode B workers.
func SolveSkylineWithConfig(c *Catalogue, l *ShoppingList, shopper, customer Location, cfg *Config) (Result, error) {
	if cfg == nil {
		cfg = Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	stagnationThreshold := cfg.StagnationThreshold

	if !c.Ready() {
		return Result{}, ErrNotPrecomputed
	}

	start := time.Now()
	m := metricsRecorder
	if m != nil {
		m.RecordListSize(len(l.Items))
		m.RecordCatalogueSize(len(c.StoreIDs()))
	}

	if len(l.Items) == 0 {
		t := Distance(shopper, customer)
		sk := NewSkyline()
		sk.Insert(ShoppingRoute{Stores: nil, ShoppingTime: t, ShoppingCost: 0})
		elapsed := time.Since(start)
		if m != nil {
			m.RecordSearch(elapsed, elapsed)
			m.RecordSkylineSize(sk.Len())
			m.RecordTermination("empty_list")
		}
		return Result{Routes: sk.Routes(), PreSearchElapsed: elapsed}, nil
	}

	r0Stores, r0Time, feasible := FindMinTimeRoute(c, l, shopper, customer)
	cStar := LowerBound(c, l)
	preSearch := time.Since(start)

	if !feasible {
		if m != nil {
			m.RecordSearch(time.Since(start), preSearch)
			m.RecordTermination("infeasible")
		}
		return Result{Routes: nil, PreSearchElapsed: preSearch, LowerBound: cStar}, nil
	}

	r0 := RouteCandidate{Stores: r0Stores, ShoppingTime: r0Time}

	sk := NewSkyline()
	var term atomic.Bool

	ch := make(chan emittedRoute)

	modeA, modeB := false, false
	for _, mode := range cfg.Modes {
		switch mode {
		case "A":
			modeA = true
		case "B":
			modeB = true
		}
	}

	var wg sync.WaitGroup

	worker := func(mode string, exp *Expander) {
		defer wg.Done()
		visited := map[string]bool{r0.Key(): true}
		pq := newPriorityQueue[RouteCandidate]()
		pq.push(r0, r0.ShoppingTime)

		for {
			if term.Load() {
				return
			}
			cand, _, ok := pq.pop()
			if !ok {
				return
			}
			if term.Load() {
				return
			}

			if FeasibleOverRoute(c, cand.Stores, l) {
				cost := MinCost(c, cand.Stores, l)
				if !math.IsInf(cost, 1) {
					ch <- emittedRoute{
						route: ShoppingRoute{Stores: cand.Stores, ShoppingTime: cand.ShoppingTime, ShoppingCost: cost},
						mode:  mode,
					}
				}
			}

			for _, succ := range exp.Successors(cand) {
				key := succ.Key()
				if visited[key] {
					continue
				}
				visited[key] = true
				pq.push(succ, succ.ShoppingTime)
			}
		}
	}

	if modeA {
		wg.Add(1)
		go worker("A", NewModeA(c, shopper, customer))
	}
	if modeB {
		wg.Add(1)
		go worker("B", NewModeB(c, shopper, customer))
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	unchanged := 0
	terminationCause := "exhausted"
	for em := range ch {
		if m != nil {
			m.RecordRouteEmitted(em.mode)
		}
		if term.Load() {
			continue
		}
		changed := sk.Insert(em.route)
		if changed {
			unchanged = 0
		} else {
			unchanged++
		}
		if em.route.ShoppingCost == cStar {
			terminationCause = "lower_bound"
			term.Store(true)
		} else if unchanged >= stagnationThreshold {
			terminationCause = "stagnation"
			term.Store(true)
		}
	}

	if m != nil {
		m.RecordSearch(time.Since(start), preSearch)
		m.RecordSkylineSize(sk.Len())
		m.RecordTermination(terminationCause)
	}

	return Result{
		Routes:            sk.Routes(),
		PreSearchElapsed:  preSearch,
		LowerBound:        cStar,
		InitialShoppingTm: r0Time,
	}, nil
}
