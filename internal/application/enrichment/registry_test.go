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

const testCNPJ = "11222333000181"

func provider(name string) *MockCompanyProvider {
	return &MockCompanyProvider{name: name}
}

func TestRegistryService_FirstSuccessWins(t *testing.T) {
	p1, p2, p3 := provider("cnpjws"), provider("brasilapi"), provider("receitaws")
	p1.On("FetchCompany", mock.Anything, testCNPJ).Return(&entity.CompanyRecord{
		LegalName: "ACME COMERCIO LTDA", CNAECode: "4751-2/01", PostalCode: "01310-100",
	}, nil)
	svc := NewRegistryService([]ports.CompanyProvider{p1, p2, p3}, nil, time.Hour, nil)

	rec, out := svc.Lookup(context.Background(), "11.222.333/0001-81")

	require.NotNil(t, rec)
	assert.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, "cnpjws", out.Source)
	assert.Equal(t, testCNPJ, rec.Document)
	assert.Equal(t, "ACME COMERCIO LTDA", rec.TradeName, "sin nombre fantasía se usa la razón social")
	assert.Equal(t, "4751201", rec.CNAECode)
	assert.Equal(t, "01310100", rec.PostalCode)
	p2.AssertNotCalled(t, "FetchCompany", mock.Anything, mock.Anything)
	p3.AssertNotCalled(t, "FetchCompany", mock.Anything, mock.Anything)
}

func TestRegistryService_FallsThroughOnErrorAndNotFound(t *testing.T) {
	p1, p2, p3 := provider("cnpjws"), provider("brasilapi"), provider("receitaws")
	var order []string
	rec := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}
	p1.On("FetchCompany", mock.Anything, testCNPJ).Return(nil, errors.New("429 too many requests")).Run(rec("cnpjws"))
	p2.On("FetchCompany", mock.Anything, testCNPJ).Return(nil, ports.ErrLookupNotFound).Run(rec("brasilapi"))
	p3.On("FetchCompany", mock.Anything, testCNPJ).Return(&entity.CompanyRecord{
		LegalName: "ACME", TradeName: "Acme Store",
	}, nil).Run(rec("receitaws"))
	svc := NewRegistryService([]ports.CompanyProvider{p1, p2, p3}, nil, time.Hour, nil)

	got, out := svc.Lookup(context.Background(), testCNPJ)

	require.NotNil(t, got)
	assert.Equal(t, "receitaws", out.Source)
	assert.Equal(t, "Acme Store", got.TradeName)
	assert.Equal(t, []string{"cnpjws", "brasilapi", "receitaws"}, order)
}

func TestRegistryService_AllFail(t *testing.T) {
	tests := []struct {
		name        string
		errs        []error
		unavailable bool
	}{
		{"todos caídos", []error{errors.New("a"), errors.New("b"), errors.New("c")}, true},
		{"alguno respondió no encontrado", []error{errors.New("a"), ports.ErrLookupNotFound, errors.New("c")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var providers []ports.CompanyProvider
			for i, err := range tt.errs {
				p := provider(string(rune('a' + i)))
				p.On("FetchCompany", mock.Anything, testCNPJ).Return(nil, err)
				providers = append(providers, p)
			}
			svc := NewRegistryService(providers, nil, time.Hour, nil)

			got, out := svc.Lookup(context.Background(), testCNPJ)

			assert.Nil(t, got)
			assert.Equal(t, StatusUnchanged, out.Status)
			assert.Equal(t, tt.unavailable, out.Unavailable)
		})
	}
}

func TestRegistryService_InvalidLengthSkipsProviders(t *testing.T) {
	p := provider("cnpjws")
	svc := NewRegistryService([]ports.CompanyProvider{p}, nil, time.Hour, nil)

	got, out := svc.Lookup(context.Background(), "1122233300018")

	assert.Nil(t, got)
	assert.Equal(t, StatusIdle, out.Status)
	p.AssertNotCalled(t, "FetchCompany", mock.Anything, mock.Anything)
}

func TestRegistryService_CachesSuccess(t *testing.T) {
	p := provider("brasilapi")
	p.On("FetchCompany", mock.Anything, testCNPJ).Return(&entity.CompanyRecord{LegalName: "ACME"}, nil).Once()
	svc := NewRegistryService([]ports.CompanyProvider{p}, newMemoryCache(), time.Hour, nil)

	_, _ = svc.Lookup(context.Background(), testCNPJ)
	got, out := svc.Lookup(context.Background(), testCNPJ)

	require.NotNil(t, got)
	assert.Equal(t, "brasilapi", out.Source)
	assert.Equal(t, "ACME", got.LegalName)
	p.AssertNumberOfCalls(t, "FetchCompany", 1)
}
