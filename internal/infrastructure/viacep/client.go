// Package viacep adaptador del directorio de CEP ViaCEP.
package viacep

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/infrastructure/httpjson"
)

var _ ports.PostalDirectory = (*Client)(nil)

// Client consulta https://viacep.com.br/ws/{cep}/json/.
type Client struct {
	baseURL string
	http    *httpjson.Client
}

// NewClient construye el cliente.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpjson.New(timeout, nil),
	}
}

type response struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        flag   `json:"erro"`
}

// flag ViaCEP devuelve "erro": true o "erro": "true" según la versión.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*f = flag(s == "true")
	return nil
}

// LookupCEP consulta un CEP de 8 dígitos.
func (c *Client) LookupCEP(ctx context.Context, cep string) (*entity.PostalAddress, error) {
	var r response
	err := c.http.GetJSON(ctx, fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep), &r)
	if err != nil {
		// ViaCEP responde 400 a CEPs con formato inválido
		if httpjson.IsStatus(err, http.StatusBadRequest) {
			return nil, ports.ErrLookupNotFound
		}
		return nil, fmt.Errorf("viacep: %w", err)
	}
	if r.Erro {
		return nil, ports.ErrLookupNotFound
	}
	return &entity.PostalAddress{
		PostalCode:   r.CEP,
		Street:       r.Logradouro,
		Complement:   r.Complemento,
		Neighborhood: r.Bairro,
		City:         r.Localidade,
		State:        r.UF,
	}, nil
}
