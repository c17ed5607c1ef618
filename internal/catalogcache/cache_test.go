package catalogcache

import (
	"context"
	"errors"
	"testing"

	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	rows map[string][]catalogload.Row
	err  error
}

func (s *stubLoader) LoadRegion(ctx context.Context, region string) ([]catalogload.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[region], nil
}

func TestStore_LoadPopulatesReadyCatalogue(t *testing.T) {
	loader := &stubLoader{rows: map[string][]catalogload.Row{
		"zagreb": {{StoreID: "s1", ProductID: "milk", UnitCost: 2, Quantity: 5}},
	}}
	s := NewStore(loader, nil, nil)

	require.False(t, s.Ready())
	err := s.Load(context.Background(), "zagreb")
	require.NoError(t, err)

	c, ok := s.Get("zagreb")
	require.True(t, ok)
	assert.True(t, c.Ready())
}

func TestStore_WarmupOpensGateEvenOnPartialFailure(t *testing.T) {
	loader := &stubLoader{rows: map[string][]catalogload.Row{
		"zagreb": {{StoreID: "s1", ProductID: "milk", UnitCost: 2, Quantity: 5}},
	}}
	s := NewStore(loader, nil, nil)
	err := s.Warmup(context.Background(), []string{"zagreb", "split"})
	assert.NoError(t, err)
	assert.True(t, s.Ready())

	_, ok := s.Get("split")
	assert.False(t, ok)
}

func TestStore_LoadFailureTripsCircuitBreakerAfterMaxFailures(t *testing.T) {
	loader := &stubLoader{err: errors.New("db unreachable")}
	s := NewStore(loader, nil, nil)

	for i := 0; i < DefaultCircuitBreakerConfig().MaxFailures; i++ {
		_ = s.Load(context.Background(), "zagreb")
	}

	err := s.Load(context.Background(), "zagreb")
	require.Error(t, err)
	assert.Equal(t, CircuitOpen, s.circuitBreaker.State())
}

func TestStore_GetMissingRegion(t *testing.T) {
	s := NewStore(&stubLoader{}, nil, nil)
	_, ok := s.Get("nowhere")
	assert.False(t, ok)
}
