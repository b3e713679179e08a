// Package nominatim adaptador de geocodificación sobre la API de búsqueda de OpenStreetMap Nominatim.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/infrastructure/httpjson"
)

var _ ports.Geocoder = (*Client)(nil)

// Client consulta GET /search. La política de uso de Nominatim exige User-Agent propio
// y como máximo una petición por segundo, que se respeta con un rate.Limiter compartido.
type Client struct {
	baseURL string
	http    *httpjson.Client
	limiter *rate.Limiter
}

// NewClient construye el cliente. rps <= 0 desactiva el limitador.
func NewClient(baseURL, userAgent string, rps float64, timeout time.Duration) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: httpjson.New(timeout, map[string]string{
			"User-Agent":      userAgent,
			"Accept-Language": "pt-BR",
		}),
		limiter: rate.NewLimiter(limit, 1),
	}
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search ejecuta la consulta y devuelve las coordenadas encontradas (limit=1).
func (c *Client) Search(ctx context.Context, q ports.GeocodeQuery) ([]entity.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}

	var places []place
	if err := c.http.GetJSON(ctx, c.baseURL+"/search?"+Params(q).Encode(), &places); err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}

	out := make([]entity.Coordinates, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		out = append(out, entity.Coordinates{Latitude: lat, Longitude: lon})
	}
	return out, nil
}

// Params traduce el descriptor a parámetros de query de Nominatim.
func Params(q ports.GeocodeQuery) url.Values {
	v := url.Values{}
	v.Set("format", "json")
	v.Set("limit", "1")
	if !q.Structured {
		v.Set("q", q.Q)
		return v
	}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("postalcode", q.PostalCode)
	set("street", q.Street)
	set("city", q.City)
	set("state", q.State)
	set("country", q.Country)
	return v
}
