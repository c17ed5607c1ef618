// Package catalogcache holds warm, query-ready skyline.Catalogue snapshots
// per region, reloaded from a Loader on demand, adapted from the teacher's
// group-aware price cache (internal/optimizer/cache.go): the same
// singleflight-dedup, atomic-snapshot-swap and semaphore-bounded warmup
// pattern, repurposed to load full catalogue snapshots instead of per-chain
// price maps (C12).
package catalogcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogload"
	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// Loader fetches the raw catalogue rows for a region (a geographic area,
// tenant, or any other partition the caller defines). Implementations may
// read from a database, object storage, or the local filesystem.
type Loader interface {
	LoadRegion(ctx context.Context, region string) ([]catalogload.Row, error)
}

// Config controls warmup and resiliency behavior.
type Config struct {
	WarmupConcurrency int           `mapstructure:"warmup_concurrency" env:"WARMUP_CONCURRENCY" default:"4"`
	LoadTimeout       time.Duration `mapstructure:"load_timeout" env:"LOAD_TIMEOUT" default:"30s"`
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() *Config {
	return &Config{WarmupConcurrency: 4, LoadTimeout: 30 * time.Second}
}

type regionCache struct {
	snapshot atomic.Value // *skyline.Catalogue
	loadedAt atomic.Value // time.Time
}

// singleFlightGroup dedupes concurrent loads of the same region, the same
// hand-rolled dedicated-context alternative to golang.org/x/sync/singleflight
// the teacher's own cache uses (so a cancelled caller's context doesn't
// cancel every other caller waiting on the same load).
type singleFlightGroup struct {
	mu    sync.Mutex
	calls map[string]*singleFlightCall
}

type singleFlightCall struct {
	wg  sync.WaitGroup
	err error
}

func (g *singleFlightGroup) do(key string, fn func() error) error {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*singleFlightCall)
	}
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		call.wg.Wait()
		return call.err
	}
	call := &singleFlightCall{}
	call.wg.Add(1)
	g.calls[key] = call
	g.mu.Unlock()

	call.err = fn()
	call.wg.Done()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return call.err
}

// Store holds one warm skyline.Catalogue snapshot per region.
type Store struct {
	regionsMu sync.RWMutex
	regions   map[string]*regionCache
	sf        singleFlightGroup

	loader Loader
	config *Config

	warmupSem      *semaphore.Weighted
	circuitBreaker *CircuitBreaker
	warmupGate     *WarmupGate
	metrics        *Metrics
	logger         *zerolog.Logger
}

// NewStore creates a region-sharded catalogue cache backed by loader.
func NewStore(loader Loader, config *Config, logger *zerolog.Logger) *Store {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Store{
		regions:        make(map[string]*regionCache),
		loader:         loader,
		config:         config,
		warmupSem:      semaphore.NewWeighted(int64(config.WarmupConcurrency)),
		circuitBreaker: NewCircuitBreaker("catalogcache", DefaultCircuitBreakerConfig(), logger),
		warmupGate:     NewWarmupGate(logger),
		metrics:        NewMetrics(),
		logger:         logger,
	}
}

// Get returns the current catalogue snapshot for a region, if loaded.
func (s *Store) Get(region string) (*skyline.Catalogue, bool) {
	s.regionsMu.RLock()
	rc, ok := s.regions[region]
	s.regionsMu.RUnlock()
	if !ok {
		return nil, false
	}
	snap, ok := rc.snapshot.Load().(*skyline.Catalogue)
	if !ok || snap == nil {
		return nil, false
	}
	return snap, true
}

// Ready reports whether the warmup gate is open: warmup has completed at
// least once, or a region has been loaded successfully.
func (s *Store) Ready() bool { return s.warmupGate.IsReady() }

// WaitReady blocks until the warmup gate opens or ctx is cancelled.
func (s *Store) WaitReady(ctx context.Context) bool { return s.warmupGate.Wait(ctx) }

// Load (re)loads a single region's catalogue, deduplicating concurrent
// callers via singleflight and gating on the circuit breaker. A region for
// which the loader returns no rows is not published. A successful publish
// opens the warmup gate.
func (s *Store) Load(ctx context.Context, region string) error {
	if !s.circuitBreaker.Allow(ctx) {
		return fmt.Errorf("catalogcache: circuit breaker open for region %s", region)
	}

	return s.sf.do(region, func() error {
		loadCtx, cancel := context.WithTimeout(context.Background(), s.config.LoadTimeout)
		defer cancel()

		start := time.Now()
		rows, err := s.loader.LoadRegion(loadCtx, region)
		if err != nil {
			s.circuitBreaker.RecordFailure(err)
			s.metrics.RecordFailure(region)
			return fmt.Errorf("catalogcache: load region %s: %w", region, err)
		}
		if len(rows) == 0 {
			s.circuitBreaker.RecordSuccess()
			s.logger.Info().Str("region", region).Msg("catalogcache: region has no rows, nothing published")
			return nil
		}

		stores := catalogload.BuildStores(rows)
		catalogue := skyline.NewCatalogue(stores, nil)
		catalogue.Precompute()

		s.circuitBreaker.RecordSuccess()
		s.metrics.RecordLoad(region, time.Since(start))
		s.metrics.RecordSnapshotSize(region, len(stores))

		s.regionsMu.Lock()
		rc, ok := s.regions[region]
		if !ok {
			rc = &regionCache{}
			s.regions[region] = rc
		}
		s.regionsMu.Unlock()

		rc.snapshot.Store(catalogue)
		rc.loadedAt.Store(time.Now())
		s.warmupGate.Ready()

		s.logger.Info().Str("region", region).Int("stores", len(stores)).Msg("catalogcache: region loaded")
		return nil
	})
}

// Warmup loads every given region concurrently, bounded by
// Config.WarmupConcurrency, and opens the warmup gate once all have been
// attempted (mirroring the teacher's StartWarmup).
func (s *Store) Warmup(ctx context.Context, regions []string) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(regions))

	for _, region := range regions {
		if err := s.warmupSem.Acquire(ctx, 1); err != nil {
			s.logger.Warn().Err(err).Str("region", region).Msg("catalogcache: failed to acquire warmup semaphore")
			continue
		}
		wg.Add(1)
		go func(region string) {
			defer s.warmupSem.Release(1)
			defer wg.Done()
			if err := s.Load(ctx, region); err != nil {
				errCh <- err
			}
		}(region)
	}

	go func() {
		wg.Wait()
		close(errCh)
	}()

	var firstErr error
	for err := range errCh {
		if firstErr == nil {
			firstErr = err
		}
	}

	s.warmupGate.Ready()
	return firstErr
}
