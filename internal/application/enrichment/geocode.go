package enrichment

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

const geocodeCountry = "Brasil"

// Strategy construye la consulta de geocodificación para una dirección.
// ok=false cuando faltan los campos que la estrategia necesita; en ese caso se salta sin espera.
type Strategy struct {
	Name  string
	Build func(a entity.Address) (q ports.GeocodeQuery, ok bool)
}

// DefaultStrategies orden fijo de estrategias, de la más precisa a la más gruesa.
var DefaultStrategies = []Strategy{
	{Name: "postalcode", Build: byPostalCode},
	{Name: "street_number", Build: byStreetAndNumber},
	{Name: "street", Build: byStreet},
	{Name: "freeform", Build: byFreeform},
	{Name: "city", Build: byCity},
}

func byPostalCode(a entity.Address) (ports.GeocodeQuery, bool) {
	cep, ok := brdoc.NormalizeCEP(a.PostalCode)
	if !ok {
		return ports.GeocodeQuery{}, false
	}
	return ports.GeocodeQuery{
		Strategy:   "postalcode",
		Structured: true,
		PostalCode: brdoc.FormatCEP(cep),
		Country:    geocodeCountry,
	}, true
}

func byStreetAndNumber(a entity.Address) (ports.GeocodeQuery, bool) {
	street, number, city := clean(a.Street), clean(a.Number), clean(a.City)
	if street == "" || number == "" || city == "" {
		return ports.GeocodeQuery{}, false
	}
	return ports.GeocodeQuery{
		Strategy:   "street_number",
		Structured: true,
		Street:     number + " " + street,
		City:       city,
		State:      clean(a.State),
		Country:    geocodeCountry,
	}, true
}

func byStreet(a entity.Address) (ports.GeocodeQuery, bool) {
	street, city := clean(a.Street), clean(a.City)
	if street == "" || city == "" {
		return ports.GeocodeQuery{}, false
	}
	return ports.GeocodeQuery{
		Strategy:   "street",
		Structured: true,
		Street:     street,
		City:       city,
		State:      clean(a.State),
		Country:    geocodeCountry,
	}, true
}

func byFreeform(a entity.Address) (ports.GeocodeQuery, bool) {
	street, city := clean(a.Street), clean(a.City)
	if street == "" || city == "" {
		return ports.GeocodeQuery{}, false
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{street, clean(a.Number), city, clean(a.State), geocodeCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return ports.GeocodeQuery{Strategy: "freeform", Q: strings.Join(parts, ", ")}, true
}

func byCity(a entity.Address) (ports.GeocodeQuery, bool) {
	city := clean(a.City)
	if city == "" {
		return ports.GeocodeQuery{}, false
	}
	return ports.GeocodeQuery{
		Strategy:   "city",
		Structured: true,
		City:       city,
		State:      clean(a.State),
		Country:    geocodeCountry,
	}, true
}

func clean(s string) string { return strings.TrimSpace(s) }

// GeocodeService prueba las estrategias en orden y se queda con el primer resultado.
type GeocodeService struct {
	geocoder   ports.Geocoder
	strategies []Strategy
	delay      time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	log        *logger.Logger
}

// NewGeocodeService construye el servicio. delay es la pausa entre intentos sin resultado.
func NewGeocodeService(g ports.Geocoder, delay time.Duration, log *logger.Logger) *GeocodeService {
	if log == nil {
		log = logger.Nop()
	}
	return &GeocodeService{
		geocoder:   g,
		strategies: DefaultStrategies,
		delay:      delay,
		sleep:      sleepCtx,
		log:        log.Component("geocode"),
	}
}

// Locate devuelve las coordenadas de la primera estrategia con al menos un resultado.
// Los errores de transporte cuentan como intento sin resultado.
// Si se agotan las estrategias devuelve nil y StatusUnchanged.
func (s *GeocodeService) Locate(ctx context.Context, addr entity.Address) (*entity.Coordinates, Outcome) {
	attempts, failures := 0, 0
	for _, st := range s.strategies {
		q, ok := st.Build(addr)
		if !ok {
			continue
		}
		if attempts > 0 && s.delay > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return nil, unchanged(false)
			}
		}
		attempts++
		results, err := s.geocoder.Search(ctx, q)
		if err != nil {
			failures++
			s.log.Warn().Err(err).Str("strategy", st.Name).Msg("geocodificación fallida")
			if ctx.Err() != nil {
				return nil, unchanged(false)
			}
			continue
		}
		if len(results) > 0 {
			c := results[0]
			out := applied("nominatim")
			out.Strategy = st.Name
			return &c, out
		}
		s.log.Debug().Str("strategy", st.Name).Msg("estrategia sin resultados")
	}
	return nil, unchanged(attempts > 0 && failures == attempts)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
