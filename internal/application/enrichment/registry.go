package enrichment

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

const registryCachePrefix = "eproc:cnpj:"

// RegistryService consulta el CNPJ en varios proveedores, en orden fijo y de uno en uno.
type RegistryService struct {
	providers []ports.CompanyProvider
	cache     ports.LookupCache
	ttl       time.Duration
	log       *logger.Logger
}

// NewRegistryService construye el servicio con la cadena de proveedores en el orden dado.
func NewRegistryService(providers []ports.CompanyProvider, cache ports.LookupCache, ttl time.Duration, log *logger.Logger) *RegistryService {
	if log == nil {
		log = logger.Nop()
	}
	return &RegistryService{providers: providers, cache: cache, ttl: ttl, log: log.Component("registry")}
}

// Lookup devuelve la ficha del primer proveedor que responda con éxito.
// Un error o un "no encontrado" pasa al siguiente; si ninguno responde devuelve nil sin error.
func (s *RegistryService) Lookup(ctx context.Context, rawCNPJ string) (*entity.CompanyRecord, Outcome) {
	cnpj, ok := brdoc.NormalizeCNPJ(rawCNPJ)
	if !ok {
		return nil, idle()
	}

	if s.cache != nil {
		var cached entity.CompanyRecord
		found, err := s.cache.GetJSON(ctx, registryCachePrefix+cnpj, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("caché de CNPJ no disponible")
		} else if found {
			return &cached, applied(cached.Source)
		}
	}

	answered := false
	for _, p := range s.providers {
		if ctx.Err() != nil {
			break
		}
		rec, err := p.FetchCompany(ctx, cnpj)
		if err != nil {
			if errors.Is(err, ports.ErrLookupNotFound) {
				answered = true
				s.log.Debug().Str("provider", p.Name()).Str("cnpj", cnpj).Msg("CNPJ no encontrado, siguiente proveedor")
			} else {
				s.log.Warn().Err(err).Str("provider", p.Name()).Msg("proveedor de CNPJ falló, siguiente proveedor")
			}
			continue
		}
		if rec == nil {
			continue
		}
		normalizeRecord(rec, cnpj)
		rec.Source = p.Name()
		s.store(ctx, cnpj, rec)
		return rec, applied(rec.Source)
	}
	return nil, unchanged(!answered)
}

// normalizeRecord aplica las reglas comunes a todos los proveedores.
func normalizeRecord(rec *entity.CompanyRecord, cnpj string) {
	rec.Document = cnpj
	if rec.TradeName == "" {
		rec.TradeName = rec.LegalName
	}
	rec.CNAECode = brdoc.OnlyDigits(rec.CNAECode)
	rec.PostalCode = brdoc.OnlyDigits(rec.PostalCode)
}

func (s *RegistryService) store(ctx context.Context, cnpj string, rec *entity.CompanyRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, registryCachePrefix+cnpj, rec, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo guardar CNPJ en caché")
	}
}
