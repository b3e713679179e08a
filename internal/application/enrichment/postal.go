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

const postalCachePrefix = "eproc:cep:"

// PostalService resuelve un CEP a calle, barrio, ciudad y UF.
type PostalService struct {
	dir   ports.PostalDirectory
	cache ports.LookupCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewPostalService construye el servicio. cache puede ser nil.
func NewPostalService(dir ports.PostalDirectory, cache ports.LookupCache, ttl time.Duration, log *logger.Logger) *PostalService {
	if log == nil {
		log = logger.Nop()
	}
	return &PostalService{dir: dir, cache: cache, ttl: ttl, log: log.Component("postal")}
}

// Lookup consulta el CEP. Si no tiene exactamente 8 dígitos no se hace ninguna petición
// y el resultado queda en StatusIdle.
func (s *PostalService) Lookup(ctx context.Context, rawCEP string) (*entity.PostalAddress, Outcome) {
	cep, ok := brdoc.NormalizeCEP(rawCEP)
	if !ok {
		return nil, idle()
	}

	var cached entity.PostalAddress
	if s.getCached(ctx, cep, &cached) {
		return &cached, applied("cache")
	}

	addr, err := s.dir.LookupCEP(ctx, cep)
	if err != nil {
		if errors.Is(err, ports.ErrLookupNotFound) {
			s.log.Debug().Str("cep", cep).Msg("CEP inexistente")
			return nil, unchanged(false)
		}
		s.log.Warn().Err(err).Str("cep", cep).Msg("consulta de CEP fallida")
		return nil, unchanged(true)
	}
	if addr.PostalCode == "" {
		addr.PostalCode = cep
	}
	s.setCached(ctx, cep, addr)
	return addr, applied("viacep")
}

// ApplyPostal copia el resultado del CEP sobre la dirección.
// Número, complemento y coordenadas no se tocan.
func ApplyPostal(addr *entity.Address, p *entity.PostalAddress) {
	if addr == nil || p == nil {
		return
	}
	addr.PostalCode = brdoc.FormatCEP(p.PostalCode)
	addr.Street = p.Street
	addr.Neighborhood = p.Neighborhood
	addr.City = p.City
	addr.State = p.State
}

func (s *PostalService) getCached(ctx context.Context, cep string, dst *entity.PostalAddress) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.GetJSON(ctx, postalCachePrefix+cep, dst)
	if err != nil {
		s.log.Warn().Err(err).Msg("caché de CEP no disponible")
		return false
	}
	return found
}

func (s *PostalService) setCached(ctx context.Context, cep string, v *entity.PostalAddress) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, postalCachePrefix+cep, v, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo guardar CEP en caché")
	}
}
