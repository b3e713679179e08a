package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

func TestDraft_RapidEditsGeocodeOnce(t *testing.T) {
	f := newFixture(40 * time.Millisecond)
	defer f.store.Close()
	d := f.store.Create("u1")

	d.SetAddress(AddressPatch{Street: strp("Avenida Paulista")})
	d.SetAddress(AddressPatch{City: strp("São Paulo")})
	d.SetAddress(AddressPatch{Number: strp("15")})
	snap := d.SetAddress(AddressPatch{Number: strp("1578")})
	assert.True(t, snap.GeocodePending)

	require.Eventually(t, func() bool { return len(f.locator.Calls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	calls := f.locator.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "1578", calls[0].Number)

	require.Eventually(t, func() bool {
		return d.Snapshot().Lookups.Geocode.Status == enrichment.StatusApplied
	}, time.Second, 5*time.Millisecond)
	c, ok := d.Snapshot().Form.Address.Coordinates()
	require.True(t, ok)
	assert.Equal(t, -23.5, c.Latitude)
}

func TestDraft_UnwatchedOrIncompleteEditsDoNotGeocode(t *testing.T) {
	f := newFixture(20 * time.Millisecond)
	defer f.store.Close()
	d := f.store.Create("u1")

	assert.False(t, d.SetAddress(AddressPatch{Street: strp("Rua Augusta")}).GeocodePending, "sin ciudad")
	assert.False(t, d.SetAddress(AddressPatch{PostalCode: strp("01305-000"), Complement: strp("sala 2")}).GeocodePending)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, f.locator.Calls())
}

func TestDraft_StaleGeocodeResultIsDropped(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	f.locator.fn = func(_ context.Context, a entity.Address) (*entity.Coordinates, enrichment.Outcome) {
		ok := enrichment.Outcome{Status: enrichment.StatusApplied, Source: "nominatim"}
		if a.Street == "Rua A" {
			close(started)
			<-release
			return &entity.Coordinates{Latitude: 1, Longitude: 1}, ok
		}
		return &entity.Coordinates{Latitude: 2, Longitude: 2}, ok
	}
	d := f.store.Create("u1")

	d.SetAddress(AddressPatch{Street: strp("Rua A"), City: strp("Recife")})
	first := make(chan struct{})
	go func() {
		d.runGeocode()
		close(first)
	}()
	<-started

	d.SetAddress(AddressPatch{Street: strp("Rua B")})
	d.runGeocode()
	c, _ := d.Snapshot().Form.Address.Coordinates()
	assert.Equal(t, 2.0, c.Latitude)

	close(release)
	<-first

	c, _ = d.Snapshot().Form.Address.Coordinates()
	assert.Equal(t, 2.0, c.Latitude, "la respuesta vieja no debe pisar la nueva")
	assert.Equal(t, enrichment.StatusApplied, d.Snapshot().Lookups.Geocode.Status)
}

func TestDraft_InFlightGeocodeDroppedWhenAddressCleared(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	f.locator.fn = func(context.Context, entity.Address) (*entity.Coordinates, enrichment.Outcome) {
		close(started)
		<-release
		return &entity.Coordinates{Latitude: 1, Longitude: 1}, enrichment.Outcome{Status: enrichment.StatusApplied, Source: "nominatim"}
	}
	d := f.store.Create("u1")

	d.SetAddress(AddressPatch{Street: strp("Rua A"), City: strp("Recife")})
	done := make(chan struct{})
	go func() {
		d.runGeocode()
		close(done)
	}()
	<-started
	assert.Equal(t, enrichment.StatusLoading, d.Snapshot().Lookups.Geocode.Status)

	d.SetAddress(AddressPatch{Street: strp("")})
	close(release)
	<-done

	snap := d.Snapshot()
	_, ok := snap.Form.Address.Coordinates()
	assert.False(t, ok, "no se fijan coordenadas de una dirección que ya no existe")
	assert.Equal(t, enrichment.StatusIdle, snap.Lookups.Geocode.Status)
}

func TestDraft_BlurPostalCode(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	f.postal.result = &entity.PostalAddress{PostalCode: "01310100", Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP"}
	f.postal.out = enrichment.Outcome{Status: enrichment.StatusApplied, Source: "viacep"}
	d := f.store.Create("u1")
	d.SetAddress(AddressPatch{PostalCode: strp("01310100"), Number: strp("1578")})

	snap := d.BlurPostalCode(context.Background())

	assert.Equal(t, []string{"01310100"}, f.postal.Calls())
	assert.Equal(t, enrichment.StatusApplied, snap.Lookups.Postal.Status)
	assert.Equal(t, "01310-100", snap.Form.Address.PostalCode)
	assert.Equal(t, "Avenida Paulista", snap.Form.Address.Street)
	assert.Equal(t, "1578", snap.Form.Address.Number)
	assert.True(t, snap.GeocodePending, "la dirección completada programa la geocodificación")
}

func TestDraft_BlurPostalCodeMalformedIsIdle(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	d := f.store.Create("u1")
	d.SetAddress(AddressPatch{PostalCode: strp("0131")})

	snap := d.BlurPostalCode(context.Background())

	assert.Empty(t, f.postal.Calls())
	assert.Equal(t, enrichment.StatusIdle, snap.Lookups.Postal.Status)
}

func TestDraft_BlurDocument(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	f.registry.result = &entity.CompanyRecord{
		Document: "11222333000181", LegalName: "ACME COMERCIO LTDA", TradeName: "ACME",
		CNAECode: "4751201", CNAEDesc: "Comércio varejista de informática",
		PostalCode: "01310100", Street: "AVENIDA PAULISTA", Number: "1578", Neighborhood: "BELA VISTA",
		City: "SAO PAULO", State: "SP", Phone: "1132223333",
	}
	f.registry.out = enrichment.Outcome{Status: enrichment.StatusApplied, Source: "cnpjws"}
	d := f.store.Create("u1")
	d.SetIdentity(IdentityPatch{Document: strp("11.222.333/0001-81"), Email: strp("antigo@x.com")})

	snap := d.BlurDocument(context.Background())

	assert.Equal(t, []string{"11.222.333/0001-81"}, f.registry.Calls())
	assert.Equal(t, "ACME COMERCIO LTDA", snap.Form.Name)
	assert.Equal(t, "ACME", snap.Form.TradeName)
	assert.Equal(t, "", snap.Form.Email, "el registro sobrescribe el email aunque venga vacío")
	require.NotNil(t, snap.Form.CNAE)
	assert.Equal(t, "4751201", snap.Form.CNAE.Code)
	assert.Equal(t, "01310-100", snap.Form.Address.PostalCode)
	assert.Equal(t, "SAO PAULO", snap.Form.Address.City)
	assert.True(t, snap.GeocodePending)
}

func TestDraft_BlurDocumentSkipsFisica(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	d := f.store.Create("u1")
	d.SetIdentity(IdentityPatch{PersonType: strp(entity.PersonFisica), Document: strp("11222333000181")})

	snap := d.BlurDocument(context.Background())

	assert.Empty(t, f.registry.Calls())
	assert.Equal(t, enrichment.StatusIdle, snap.Lookups.Registry.Status)
}

func TestDraft_RegistryUnavailableFlag(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	f.registry.out = enrichment.Outcome{Status: enrichment.StatusUnchanged, Unavailable: true}
	d := f.store.Create("u1")
	d.SetIdentity(IdentityPatch{Name: strp("Manual"), Document: strp("11222333000181")})

	snap := d.BlurDocument(context.Background())

	assert.True(t, snap.EnrichmentUnavailable)
	assert.Equal(t, "Manual", snap.Form.Name)
}

func TestDraft_SelectCNAE(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.store.Close()
	d := f.store.Create("u1")

	snap := d.SelectCNAE(entity.ClassificationEntry{Code: "6201501", Description: "Desenvolvimento de programas", Activities: []string{"software"}})

	require.NotNil(t, snap.Form.CNAE)
	assert.Equal(t, "6201501", snap.Form.CNAE.Code)
	assert.Nil(t, snap.Form.CNAE.Activities)
}
