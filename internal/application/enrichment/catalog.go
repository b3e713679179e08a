package enrichment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

// MaxCatalogResults tope de resultados por búsqueda.
const MaxCatalogResults = 50

type indexedEntry struct {
	entry      entity.ClassificationEntry
	codeDigits string
	folded     string // descripción + actividades, sin acentos y en minúsculas
}

// CatalogService mantiene en memoria los catálogos CNAE y NCM.
// Cada catálogo se descarga una sola vez; una descarga fallida se reintenta en la siguiente búsqueda.
type CatalogService struct {
	sources map[entity.CatalogKind]ports.ClassificationSource
	group   singleflight.Group
	mu      sync.RWMutex
	loaded  map[entity.CatalogKind][]indexedEntry
	log     *logger.Logger
}

// NewCatalogService construye el servicio con una fuente por tipo de catálogo.
func NewCatalogService(log *logger.Logger, sources ...ports.ClassificationSource) *CatalogService {
	if log == nil {
		log = logger.Nop()
	}
	m := make(map[entity.CatalogKind]ports.ClassificationSource, len(sources))
	for _, s := range sources {
		m[s.Kind()] = s
	}
	return &CatalogService{
		sources: m,
		loaded:  make(map[entity.CatalogKind][]indexedEntry),
		log:     log.Component("catalog"),
	}
}

// Warm descarga todos los catálogos configurados.
func (s *CatalogService) Warm(ctx context.Context) error {
	for kind := range s.sources {
		if _, err := s.entries(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// Search filtra el catálogo por subcadena en la descripción, sin distinguir mayúsculas ni acentos.
// Si la consulta contiene dígitos también acepta las entradas cuyo código los contenga.
// Consulta vacía devuelve lista vacía. limit se acota a MaxCatalogResults.
func (s *CatalogService) Search(ctx context.Context, kind entity.CatalogKind, query string, limit int) ([]entity.ClassificationEntry, error) {
	if limit <= 0 || limit > MaxCatalogResults {
		limit = MaxCatalogResults
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.ClassificationEntry{}, nil
	}

	list, err := s.entries(ctx, kind)
	if err != nil {
		return []entity.ClassificationEntry{}, err
	}

	needle := fold(query)
	match := func(e *indexedEntry) bool { return strings.Contains(e.folded, needle) }
	if brdoc.HasDigit(query) {
		digits := brdoc.OnlyDigits(query)
		match = func(e *indexedEntry) bool {
			return strings.Contains(e.codeDigits, digits) || strings.Contains(e.folded, needle)
		}
	}

	out := make([]entity.ClassificationEntry, 0, limit)
	for i := range list {
		if match(&list[i]) {
			out = append(out, list[i].entry)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *CatalogService) entries(ctx context.Context, kind entity.CatalogKind) ([]indexedEntry, error) {
	s.mu.RLock()
	list, ok := s.loaded[kind]
	s.mu.RUnlock()
	if ok {
		return list, nil
	}

	src, ok := s.sources[kind]
	if !ok {
		return nil, fmt.Errorf("catálogo %q no configurado", kind)
	}

	v, err, _ := s.group.Do(string(kind), func() (interface{}, error) {
		s.mu.RLock()
		cached, ok := s.loaded[kind]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
		raw, err := src.FetchAll(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("catalog", string(kind)).Msg("descarga de catálogo fallida")
			return nil, fmt.Errorf("catálogo %s: %w", kind, err)
		}
		idx := index(raw)
		s.mu.Lock()
		s.loaded[kind] = idx
		s.mu.Unlock()
		s.log.Info().Str("catalog", string(kind)).Int("entries", len(idx)).Msg("catálogo cargado")
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]indexedEntry), nil
}

func index(raw []entity.ClassificationEntry) []indexedEntry {
	out := make([]indexedEntry, 0, len(raw))
	for _, e := range raw {
		text := e.Description
		if len(e.Activities) > 0 {
			text += "\n" + strings.Join(e.Activities, "\n")
		}
		out = append(out, indexedEntry{
			entry:      e,
			codeDigits: brdoc.OnlyDigits(e.Code),
			folded:     fold(text),
		})
	}
	return out
}
