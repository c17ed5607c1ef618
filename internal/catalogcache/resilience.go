package catalogcache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CircuitBreakerState represents the state of the circuit breaker.
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	MaxFailures      int           `default:"5"`
	ResetTimeout     time.Duration `default:"30s"`
	HalfOpenMaxCalls int           `default:"3"`
}

// DefaultCircuitBreakerConfig returns the default circuit breaker configuration.
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMaxCalls: 3,
	}
}

// CircuitBreaker implements the circuit breaker pattern for catalogue load
// failures, adapted from the teacher's price-cache circuit breaker
// (internal/optimizer/resilience.go) — same state machine, applied to region
// loads instead of chain price loads.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           CircuitBreakerState
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	lastStateChange time.Time
	config          *CircuitBreakerConfig
	logger          *zerolog.Logger
	name            string
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(name string, config *CircuitBreakerConfig, logger *zerolog.Logger) *CircuitBreaker {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		nopLogger := zerolog.Nop()
		logger = &nopLogger
	}
	return &CircuitBreaker{
		state:           CircuitClosed,
		config:          config,
		logger:          logger,
		name:            name,
		lastStateChange: time.Now(),
	}
}

// Allow reports whether a load attempt should be allowed through.
func (cb *CircuitBreaker) Allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if now.Sub(cb.lastFailureTime) >= cb.config.ResetTimeout {
			cb.transitionTo(CircuitHalfOpen, now)
			cb.logger.Info().Str("circuit_breaker", cb.name).Msg("circuit breaker transitioning to half-open")
			return true
		}
		return false
	case CircuitHalfOpen:
		return cb.successCount < cb.config.HalfOpenMaxCalls
	default:
		return false
	}
}

// RecordSuccess records a successful load.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	switch cb.state {
	case CircuitClosed:
		cb.failureCount = 0
	case CircuitHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.config.HalfOpenMaxCalls {
			cb.transitionTo(CircuitClosed, now)
			cb.successCount = 0
			cb.failureCount = 0
		}
	}
}

// RecordFailure records a failed load.
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	cb.failureCount++
	cb.lastFailureTime = now

	cb.logger.Error().Err(err).Str("circuit_breaker", cb.name).Int("failure_count", cb.failureCount).Msg("circuit breaker recording failure")

	switch cb.state {
	case CircuitClosed:
		if cb.failureCount >= cb.config.MaxFailures {
			cb.transitionTo(CircuitOpen, now)
			cb.logger.Warn().Str("circuit_breaker", cb.name).Dur("reset_timeout", cb.config.ResetTimeout).Msg("circuit breaker opening after max failures")
		}
	case CircuitHalfOpen:
		cb.transitionTo(CircuitOpen, now)
		cb.successCount = 0
	}
}

func (cb *CircuitBreaker) transitionTo(newState CircuitBreakerState, now time.Time) {
	cb.state = newState
	cb.lastStateChange = now
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset forces the circuit breaker back to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transitionTo(CircuitClosed, time.Now())
	cb.failureCount = 0
	cb.successCount = 0
}

// WarmupGate blocks solve queries until the initial catalogue warmup is
// complete, adapted from the teacher's WarmupGate.
type WarmupGate struct {
	mu       sync.RWMutex
	ready    bool
	warmedCh chan struct{}
	logger   *zerolog.Logger
}

// NewWarmupGate creates a new warmup gate.
func NewWarmupGate(logger *zerolog.Logger) *WarmupGate {
	if logger == nil {
		nopLogger := zerolog.Nop()
		logger = &nopLogger
	}
	return &WarmupGate{warmedCh: make(chan struct{}), logger: logger}
}

// Wait blocks until warmup completes or ctx is done.
func (wg *WarmupGate) Wait(ctx context.Context) bool {
	wg.mu.RLock()
	ready := wg.ready
	wg.mu.RUnlock()
	if ready {
		return true
	}
	select {
	case <-wg.warmedCh:
		return true
	case <-ctx.Done():
		return false
	}
}

// Ready marks warmup as complete.
func (wg *WarmupGate) Ready() {
	wg.mu.Lock()
	defer wg.mu.Unlock()
	if !wg.ready {
		wg.ready = true
		close(wg.warmedCh)
		wg.logger.Info().Msg("warmup gate: warmup complete")
	}
}

// IsReady reports whether warmup has completed.
func (wg *WarmupGate) IsReady() bool {
	wg.mu.RLock()
	defer wg.mu.RUnlock()
	return wg.ready
}

// Reset reverts the gate to not-ready, used when a region is invalidated.
func (wg *WarmupGate) Reset() {
	wg.mu.Lock()
	defer wg.mu.Unlock()
	wg.ready = false
	wg.warmedCh = make(chan struct{})
}
