package ports

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// ErrLookupNotFound el proveedor respondió, pero no conoce el CEP/CNPJ consultado.
var ErrLookupNotFound = errors.New("lookup: registro no encontrado")

// PostalDirectory consulta un directorio de CEP (ViaCEP).
// Devuelve ErrLookupNotFound cuando el CEP no existe.
type PostalDirectory interface {
	LookupCEP(ctx context.Context, cep string) (*entity.PostalAddress, error)
}

// GeocodeQuery descriptor de una petición de geocodificación.
// Structured=true usa los campos estructurados; en otro caso Q (texto libre).
type GeocodeQuery struct {
	Strategy   string
	Structured bool
	PostalCode string
	Street     string
	City       string
	State      string
	Country    string
	Q          string
}

// Geocoder resuelve un GeocodeQuery a cero o más coordenadas.
type Geocoder interface {
	Search(ctx context.Context, q GeocodeQuery) ([]entity.Coordinates, error)
}

// CompanyProvider una fuente del registro de CNPJ.
// Devuelve ErrLookupNotFound si el proveedor no conoce el CNPJ.
type CompanyProvider interface {
	Name() string
	FetchCompany(ctx context.Context, cnpj string) (*entity.CompanyRecord, error)
}

// ClassificationSource descarga un catálogo completo (CNAE o NCM).
type ClassificationSource interface {
	Kind() entity.CatalogKind
	FetchAll(ctx context.Context) ([]entity.ClassificationEntry, error)
}

// LookupCache caché de resultados de consultas externas. Un miss devuelve found=false sin error.
type LookupCache interface {
	GetJSON(ctx context.Context, key string, dst any) (found bool, err error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
