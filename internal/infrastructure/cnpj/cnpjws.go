package cnpj

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/infrastructure/httpjson"
)

var _ ports.CompanyProvider = (*CNPJWS)(nil)

// CNPJWS API pública de https://publica.cnpj.ws (3 consultas por minuto).
type CNPJWS struct {
	baseURL string
	http    *httpjson.Client
}

// NewCNPJWS construye el proveedor.
func NewCNPJWS(baseURL string, timeout time.Duration) *CNPJWS {
	return &CNPJWS{baseURL: strings.TrimRight(baseURL, "/"), http: httpjson.New(timeout, nil)}
}

// Name identificador del proveedor.
func (p *CNPJWS) Name() string { return "cnpjws" }

type cnpjwsResponse struct {
	RazaoSocial     string `json:"razao_social"`
	Estabelecimento struct {
		NomeFantasia       text `json:"nome_fantasia"`
		AtividadePrincipal struct {
			ID        text `json:"id"`
			Subclasse text `json:"subclasse"`
			Descricao text `json:"descricao"`
		} `json:"atividade_principal"`
		CEP            text `json:"cep"`
		TipoLogradouro text `json:"tipo_logradouro"`
		Logradouro     text `json:"logradouro"`
		Numero         text `json:"numero"`
		Complemento    text `json:"complemento"`
		Bairro         text `json:"bairro"`
		Cidade         struct {
			Nome text `json:"nome"`
		} `json:"cidade"`
		Estado struct {
			Sigla text `json:"sigla"`
		} `json:"estado"`
		Email     text `json:"email"`
		DDD1      text `json:"ddd1"`
		Telefone1 text `json:"telefone1"`
	} `json:"estabelecimento"`
}

// FetchCompany GET /cnpj/{cnpj}.
func (p *CNPJWS) FetchCompany(ctx context.Context, cnpj string) (*entity.CompanyRecord, error) {
	var r cnpjwsResponse
	if err := p.http.GetJSON(ctx, fmt.Sprintf("%s/cnpj/%s", p.baseURL, cnpj), &r); err != nil {
		return nil, classify(err)
	}
	if r.RazaoSocial == "" {
		return nil, ports.ErrLookupNotFound
	}
	e := r.Estabelecimento
	code := e.AtividadePrincipal.ID.String()
	if code == "" {
		code = e.AtividadePrincipal.Subclasse.String()
	}
	return &entity.CompanyRecord{
		LegalName:    r.RazaoSocial,
		TradeName:    e.NomeFantasia.String(),
		CNAECode:     code,
		CNAEDesc:     e.AtividadePrincipal.Descricao.String(),
		PostalCode:   e.CEP.String(),
		Street:       joinNonEmpty(" ", e.TipoLogradouro.String(), e.Logradouro.String()),
		Number:       e.Numero.String(),
		Neighborhood: e.Bairro.String(),
		City:         e.Cidade.Nome.String(),
		State:        e.Estado.Sigla.String(),
		Complement:   e.Complemento.String(),
		Email:        e.Email.String(),
		Phone:        e.DDD1.String() + e.Telefone1.String(),
	}, nil
}
