package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/ports"
)

func TestParams(t *testing.T) {
	structured := Params(ports.GeocodeQuery{
		Structured: true, Street: "1578 Avenida Paulista", City: "São Paulo", State: "SP", Country: "Brasil",
	})
	assert.Equal(t, "1578 Avenida Paulista", structured.Get("street"))
	assert.Equal(t, "Brasil", structured.Get("country"))
	assert.Equal(t, "json", structured.Get("format"))
	assert.Equal(t, "1", structured.Get("limit"))
	assert.False(t, structured.Has("q"))
	assert.False(t, structured.Has("postalcode"))

	free := Params(ports.GeocodeQuery{Q: "Rua XV, Curitiba, PR, Brasil"})
	assert.Equal(t, "Rua XV, Curitiba, PR, Brasil", free.Get("q"))
	assert.False(t, free.Has("street"))
}

func TestClient_Search(t *testing.T) {
	var gotUA, gotLang, gotPostal string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotPostal = r.URL.Query().Get("postalcode")
		assert.Equal(t, "/search", r.URL.Path)
		_, _ = w.Write([]byte(`[{"lat":"-23.5613","lon":"-46.6565","display_name":"Avenida Paulista"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "eproc-test/1.0", 0, time.Second)
	got, err := c.Search(context.Background(), ports.GeocodeQuery{Structured: true, PostalCode: "01310-100", Country: "Brasil"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, -23.5613, got[0].Latitude, 1e-9)
	assert.InDelta(t, -46.6565, got[0].Longitude, 1e-9)
	assert.Equal(t, "eproc-test/1.0", gotUA)
	assert.Equal(t, "pt-BR", gotLang)
	assert.Equal(t, "01310-100", gotPostal)
}

func TestClient_SearchEmptyAndErrors(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "eproc-test/1.0", 0, time.Second)

	got, err := c.Search(context.Background(), ports.GeocodeQuery{Q: "nowhere"})
	require.NoError(t, err)
	assert.Empty(t, got)

	status = http.StatusServiceUnavailable
	_, err = c.Search(context.Background(), ports.GeocodeQuery{Q: "nowhere"})
	assert.Error(t, err)
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// 1 petición cada 10 s: la segunda debe esperar y el contexto la cancela antes
	c := NewClient(srv.URL, "eproc-test/1.0", 0.1, time.Second)
	_, err := c.Search(context.Background(), ports.GeocodeQuery{Q: "a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, ports.GeocodeQuery{Q: "b"})
	assert.Error(t, err)
}
