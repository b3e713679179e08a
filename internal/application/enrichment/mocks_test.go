package enrichment

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

type MockPostalDirectory struct {
	mock.Mock
}

func (m *MockPostalDirectory) LookupCEP(ctx context.Context, cep string) (*entity.PostalAddress, error) {
	args := m.Called(ctx, cep)
	if v := args.Get(0); v != nil {
		return v.(*entity.PostalAddress), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, q ports.GeocodeQuery) ([]entity.Coordinates, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]entity.Coordinates), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCompanyProvider struct {
	mock.Mock
	name string
}

func (m *MockCompanyProvider) Name() string { return m.name }

func (m *MockCompanyProvider) FetchCompany(ctx context.Context, cnpj string) (*entity.CompanyRecord, error) {
	args := m.Called(ctx, cnpj)
	if v := args.Get(0); v != nil {
		return v.(*entity.CompanyRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryCache LookupCache en memoria para tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (c *memoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

// staticSource ClassificationSource que cuenta descargas.
type staticSource struct {
	kind    entity.CatalogKind
	entries []entity.ClassificationEntry
	err     error
	mu      sync.Mutex
	calls   int
	gate    chan struct{}
}

func (s *staticSource) Kind() entity.CatalogKind { return s.kind }

func (s *staticSource) FetchAll(context.Context) ([]entity.ClassificationEntry, error) {
	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	if s.gate != nil {
		<-s.gate
	}
	if err != nil {
		return nil, err
	}
	return s.entries, nil
}

func (s *staticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
