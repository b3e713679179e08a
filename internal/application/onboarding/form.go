// Package onboarding mantiene borradores del formulario de alta de proveedores en el servidor
// y aplica sobre ellos el enriquecimiento automático (CEP, CNPJ, geocodificación y CNAE).
package onboarding

import (
	"context"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// PostalLookup resuelve un CEP.
type PostalLookup interface {
	Lookup(ctx context.Context, rawCEP string) (*entity.PostalAddress, enrichment.Outcome)
}

// RegistryLookup resuelve un CNPJ.
type RegistryLookup interface {
	Lookup(ctx context.Context, rawCNPJ string) (*entity.CompanyRecord, enrichment.Outcome)
}

// Locator geocodifica una dirección.
type Locator interface {
	Locate(ctx context.Context, addr entity.Address) (*entity.Coordinates, enrichment.Outcome)
}

// SupplierCreator persiste el proveedor final.
type SupplierCreator interface {
	Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
}

// Identity datos de identificación y contacto del proveedor.
type Identity struct {
	PersonType            string `json:"person_type"`
	Document              string `json:"document"`
	Name                  string `json:"name"`
	TradeName             string `json:"trade_name"`
	StateRegistration     string `json:"state_registration"`
	MunicipalRegistration string `json:"municipal_registration"`
	TaxRegime             string `json:"tax_regime"`
	IEIndicator           string `json:"ie_indicator"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Website               string `json:"website"`
	Observations          string `json:"observations"`
}

// IdentityPatch edición parcial de Identity; los campos nil no cambian.
type IdentityPatch struct {
	PersonType            *string `json:"person_type" validate:"omitempty,oneof=FISICA JURIDICA"`
	Document              *string `json:"document" validate:"omitempty,max=20"`
	Name                  *string `json:"name" validate:"omitempty,max=200"`
	TradeName             *string `json:"trade_name" validate:"omitempty,max=200"`
	StateRegistration     *string `json:"state_registration" validate:"omitempty,max=30"`
	MunicipalRegistration *string `json:"municipal_registration" validate:"omitempty,max=30"`
	TaxRegime             *string `json:"tax_regime" validate:"omitempty,oneof=SIMPLES_NACIONAL LUCRO_PRESUMIDO LUCRO_REAL"`
	IEIndicator           *string `json:"ie_indicator" validate:"omitempty,oneof=CONTRIBUINTE ISENTO NAO_CONTRIBUINTE"`
	Email                 *string `json:"email" validate:"omitempty,max=200"`
	Phone                 *string `json:"phone" validate:"omitempty,max=30"`
	Website               *string `json:"website" validate:"omitempty,max=300"`
	Observations          *string `json:"observations" validate:"omitempty,max=2000"`
}

func (p IdentityPatch) apply(id *Identity) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&id.PersonType, p.PersonType)
	set(&id.Document, p.Document)
	set(&id.Name, p.Name)
	set(&id.TradeName, p.TradeName)
	set(&id.StateRegistration, p.StateRegistration)
	set(&id.MunicipalRegistration, p.MunicipalRegistration)
	set(&id.TaxRegime, p.TaxRegime)
	set(&id.IEIndicator, p.IEIndicator)
	set(&id.Email, p.Email)
	set(&id.Phone, p.Phone)
	set(&id.Website, p.Website)
	set(&id.Observations, p.Observations)
}

// AddressPatch edición parcial de la dirección. Coordenadas explícitas sustituyen a las geocodificadas.
type AddressPatch struct {
	PostalCode   *string  `json:"postal_code" validate:"omitempty,max=9"`
	Street       *string  `json:"street" validate:"omitempty,max=200"`
	Number       *string  `json:"number" validate:"omitempty,max=20"`
	Complement   *string  `json:"complement" validate:"omitempty,max=100"`
	Neighborhood *string  `json:"neighborhood" validate:"omitempty,max=100"`
	City         *string  `json:"city" validate:"omitempty,max=100"`
	State        *string  `json:"state" validate:"omitempty,max=2"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func (p AddressPatch) apply(a entity.Address) entity.Address {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.PostalCode, p.PostalCode)
	set(&a.Street, p.Street)
	set(&a.Number, p.Number)
	set(&a.Complement, p.Complement)
	set(&a.Neighborhood, p.Neighborhood)
	set(&a.City, p.City)
	set(&a.State, p.State)
	if p.Latitude != nil && p.Longitude != nil {
		a.SetCoordinates(entity.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude})
	}
	return a
}

// watchedChanged campos cuyo cambio reprograma la geocodificación.
func watchedChanged(before, after entity.Address) bool {
	return before.Street != after.Street ||
		before.Number != after.Number ||
		before.Neighborhood != after.Neighborhood ||
		before.City != after.City ||
		before.State != after.State
}

// Form estado editable del borrador.
type Form struct {
	Identity
	Address entity.Address              `json:"address"`
	CNAE    *entity.ClassificationEntry `json:"cnae,omitempty"`
}

// Lookups último resultado de cada enriquecimiento.
type Lookups struct {
	Postal   enrichment.Outcome `json:"postal"`
	Registry enrichment.Outcome `json:"registry"`
	Geocode  enrichment.Outcome `json:"geocode"`
}

// Snapshot copia del borrador para respuesta HTTP.
type Snapshot struct {
	ID                    string  `json:"id"`
	Form                  Form    `json:"form"`
	Lookups               Lookups `json:"lookups"`
	EnrichmentUnavailable bool    `json:"enrichment_unavailable"`
	GeocodePending        bool    `json:"geocode_pending"`
}

// toCreateRequest convierte el formulario en la entrada del alta de proveedor.
func (f Form) toCreateRequest() dto.CreateSupplierRequest {
	req := dto.CreateSupplierRequest{
		PersonType:            f.PersonType,
		Document:              f.Document,
		Name:                  f.Name,
		TradeName:             f.TradeName,
		StateRegistration:     f.StateRegistration,
		MunicipalRegistration: f.MunicipalRegistration,
		TaxRegime:             f.TaxRegime,
		IEIndicator:           f.IEIndicator,
		Email:                 f.Email,
		Phone:                 f.Phone,
		Website:               f.Website,
		Observations:          f.Observations,
		Address: dto.AddressDTO{
			PostalCode:   f.Address.PostalCode,
			Street:       f.Address.Street,
			Number:       f.Address.Number,
			Complement:   f.Address.Complement,
			Neighborhood: f.Address.Neighborhood,
			City:         f.Address.City,
			State:        f.Address.State,
			Latitude:     f.Address.Latitude,
			Longitude:    f.Address.Longitude,
		},
	}
	if f.CNAE != nil {
		req.CNAECode = f.CNAE.Code
		req.CNAEDescription = f.CNAE.Description
	}
	return req
}
