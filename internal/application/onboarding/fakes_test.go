package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

type fakePostal struct {
	mu     sync.Mutex
	result *entity.PostalAddress
	out    enrichment.Outcome
	calls  []string
}

func (f *fakePostal) Lookup(_ context.Context, cep string) (*entity.PostalAddress, enrichment.Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cep)
	return f.result, f.out
}

func (f *fakePostal) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeRegistry struct {
	mu     sync.Mutex
	result *entity.CompanyRecord
	out    enrichment.Outcome
	calls  []string
}

func (f *fakeRegistry) Lookup(_ context.Context, cnpj string) (*entity.CompanyRecord, enrichment.Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cnpj)
	return f.result, f.out
}

func (f *fakeRegistry) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeLocator registra cada dirección recibida y delega la respuesta en fn.
type fakeLocator struct {
	mu    sync.Mutex
	calls []entity.Address
	fn    func(ctx context.Context, a entity.Address) (*entity.Coordinates, enrichment.Outcome)
}

func (f *fakeLocator) Locate(ctx context.Context, a entity.Address) (*entity.Coordinates, enrichment.Outcome) {
	f.mu.Lock()
	f.calls = append(f.calls, a)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return &entity.Coordinates{Latitude: -23.5, Longitude: -46.6}, enrichment.Outcome{Status: enrichment.StatusApplied, Source: "nominatim"}
	}
	return fn(ctx, a)
}

func (f *fakeLocator) Calls() []entity.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Address(nil), f.calls...)
}

type MockSupplierCreator struct {
	mock.Mock
}

func (m *MockSupplierCreator) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dto.SupplierResponse)
	return out, args.Error(1)
}

type rejectAll struct{ err error }

func (r rejectAll) Struct(interface{}) error { return r.err }

type fixture struct {
	store    *Store
	postal   *fakePostal
	registry *fakeRegistry
	locator  *fakeLocator
	creator  *MockSupplierCreator
}

func newFixture(debounce time.Duration) *fixture {
	f := &fixture{
		postal:   &fakePostal{},
		registry: &fakeRegistry{},
		locator:  &fakeLocator{},
		creator:  new(MockSupplierCreator),
	}
	f.store = NewStore(Dependencies{
		Postal:         f.postal,
		Registry:       f.registry,
		Geocoder:       f.locator,
		Suppliers:      f.creator,
		Debounce:       debounce,
		GeocodeTimeout: time.Second,
	}, time.Hour)
	return f
}

func strp(s string) *string { return &s }
