package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

func fullAddress() entity.Address {
	return entity.Address{
		PostalCode: "01310-100",
		Street:     "Avenida Paulista",
		Number:     "1578",
		City:       "São Paulo",
		State:      "SP",
	}
}

func strategyIs(name string) interface{} {
	return mock.MatchedBy(func(q ports.GeocodeQuery) bool { return q.Strategy == name })
}

// newTestGeocodeService registra las pausas en lugar de dormir.
func newTestGeocodeService(g ports.Geocoder) (*GeocodeService, *[]time.Duration) {
	svc := NewGeocodeService(g, 800*time.Millisecond, nil)
	var sleeps []time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return svc, &sleeps
}

func TestStrategies_BuildQueries(t *testing.T) {
	a := fullAddress()

	q, ok := byPostalCode(a)
	require.True(t, ok)
	assert.Equal(t, "01310-100", q.PostalCode)
	assert.True(t, q.Structured)
	assert.Equal(t, "Brasil", q.Country)

	q, ok = byStreetAndNumber(a)
	require.True(t, ok)
	assert.Equal(t, "1578 Avenida Paulista", q.Street)
	assert.Equal(t, "São Paulo", q.City)
	assert.Equal(t, "SP", q.State)

	q, ok = byStreet(a)
	require.True(t, ok)
	assert.Equal(t, "Avenida Paulista", q.Street)

	q, ok = byFreeform(a)
	require.True(t, ok)
	assert.False(t, q.Structured)
	assert.Equal(t, "Avenida Paulista, 1578, São Paulo, SP, Brasil", q.Q)

	q, ok = byCity(a)
	require.True(t, ok)
	assert.Empty(t, q.Street)
	assert.Equal(t, "São Paulo", q.City)
}

func TestStrategies_SkipWhenFieldsMissing(t *testing.T) {
	a := entity.Address{City: "Curitiba", State: "PR"}

	_, ok := byPostalCode(a)
	assert.False(t, ok)
	_, ok = byStreetAndNumber(a)
	assert.False(t, ok)
	_, ok = byStreet(a)
	assert.False(t, ok)
	_, ok = byFreeform(a)
	assert.False(t, ok)
	_, ok = byCity(a)
	assert.True(t, ok)
}

func TestGeocodeService_FirstStrategyWins(t *testing.T) {
	g := new(MockGeocoder)
	g.On("Search", mock.Anything, strategyIs("postalcode")).
		Return([]entity.Coordinates{{Latitude: -23.561, Longitude: -46.656}}, nil)
	svc, sleeps := newTestGeocodeService(g)

	c, out := svc.Locate(context.Background(), fullAddress())

	require.NotNil(t, c)
	assert.InDelta(t, -23.561, c.Latitude, 1e-9)
	assert.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, "postalcode", out.Strategy)
	assert.Empty(t, *sleeps)
	g.AssertNumberOfCalls(t, "Search", 1)
}

func TestGeocodeService_FallsThroughInOrderWithDelay(t *testing.T) {
	g := new(MockGeocoder)
	var order []string
	record := func(args mock.Arguments) { order = append(order, args.Get(1).(ports.GeocodeQuery).Strategy) }
	g.On("Search", mock.Anything, strategyIs("postalcode")).Return([]entity.Coordinates{}, nil).Run(record)
	g.On("Search", mock.Anything, strategyIs("street_number")).Return(nil, errors.New("503")).Run(record)
	g.On("Search", mock.Anything, strategyIs("street")).Return([]entity.Coordinates{}, nil).Run(record)
	g.On("Search", mock.Anything, strategyIs("freeform")).
		Return([]entity.Coordinates{{Latitude: 1, Longitude: 2}}, nil).Run(record)
	svc, sleeps := newTestGeocodeService(g)

	c, out := svc.Locate(context.Background(), fullAddress())

	require.NotNil(t, c)
	assert.Equal(t, "freeform", out.Strategy)
	assert.Equal(t, []string{"postalcode", "street_number", "street", "freeform"}, order)
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 800 * time.Millisecond, 800 * time.Millisecond}, *sleeps)
	g.AssertNotCalled(t, "Search", mock.Anything, strategyIs("city"))
}

func TestGeocodeService_Exhausted(t *testing.T) {
	g := new(MockGeocoder)
	g.On("Search", mock.Anything, mock.Anything).Return([]entity.Coordinates{}, nil)
	svc, sleeps := newTestGeocodeService(g)

	c, out := svc.Locate(context.Background(), fullAddress())

	assert.Nil(t, c)
	assert.Equal(t, StatusUnchanged, out.Status)
	assert.False(t, out.Unavailable)
	g.AssertNumberOfCalls(t, "Search", 5)
	assert.Len(t, *sleeps, 4)
}

func TestGeocodeService_AllTransportFailuresMarkUnavailable(t *testing.T) {
	g := new(MockGeocoder)
	g.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	svc, _ := newTestGeocodeService(g)

	_, out := svc.Locate(context.Background(), entity.Address{City: "Recife", State: "PE"})

	assert.Equal(t, StatusUnchanged, out.Status)
	assert.True(t, out.Unavailable)
	g.AssertNumberOfCalls(t, "Search", 1)
}

func TestGeocodeService_SkippedStrategiesDoNotDelay(t *testing.T) {
	g := new(MockGeocoder)
	g.On("Search", mock.Anything, strategyIs("street")).Return([]entity.Coordinates{}, nil)
	g.On("Search", mock.Anything, strategyIs("freeform")).Return([]entity.Coordinates{{Latitude: 3, Longitude: 4}}, nil)
	svc, sleeps := newTestGeocodeService(g)

	// sin CEP ni número: postalcode y street_number se saltan
	_, out := svc.Locate(context.Background(), entity.Address{Street: "Rua XV", City: "Curitiba", State: "PR"})

	assert.Equal(t, "freeform", out.Strategy)
	assert.Len(t, *sleeps, 1)
}

func TestGeocodeService_ContextCancelledDuringDelay(t *testing.T) {
	g := new(MockGeocoder)
	g.On("Search", mock.Anything, mock.Anything).Return([]entity.Coordinates{}, nil)
	svc := NewGeocodeService(g, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c, out := svc.Locate(ctx, fullAddress())

	assert.Nil(t, c)
	assert.Equal(t, StatusUnchanged, out.Status)
	g.AssertNumberOfCalls(t, "Search", 1)
}
