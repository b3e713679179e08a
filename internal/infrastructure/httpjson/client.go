// Package httpjson cliente HTTP mínimo para APIs públicas que responden JSON.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody límite de lectura de respuestas (los catálogos completos rondan unos MB).
const maxBody = 32 << 20

// StatusError respuesta HTTP no exitosa.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.Status, e.Body)
}

// IsStatus indica si err es un StatusError con el código dado.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}

// Client envuelve http.Client con cabeceras comunes.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// New construye el cliente con el timeout indicado y cabeceras fijas (User-Agent, Accept-Language...).
func New(timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}, headers: headers}
}

// GetJSON hace GET y decodifica el cuerpo en out. Respuestas fuera de 2xx devuelven *StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		return &StatusError{URL: url, Status: resp.StatusCode, Body: snippet}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decodificar JSON de %s: %w", url, err)
	}
	return nil
}
