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

var _ ports.CompanyProvider = (*BrasilAPI)(nil)

// BrasilAPI consulta https://brasilapi.com.br/api/cnpj/v1/{cnpj}.
type BrasilAPI struct {
	baseURL string
	http    *httpjson.Client
}

// NewBrasilAPI construye el proveedor.
func NewBrasilAPI(baseURL string, timeout time.Duration) *BrasilAPI {
	return &BrasilAPI{baseURL: strings.TrimRight(baseURL, "/"), http: httpjson.New(timeout, nil)}
}

// Name identificador del proveedor.
func (p *BrasilAPI) Name() string { return "brasilapi" }

type brasilAPIResponse struct {
	RazaoSocial         text `json:"razao_social"`
	NomeFantasia        text `json:"nome_fantasia"`
	CNAEFiscal          text `json:"cnae_fiscal"` // número en la API
	CNAEFiscalDescricao text `json:"cnae_fiscal_descricao"`
	CEP                 text `json:"cep"`
	DescTipoLogradouro  text `json:"descricao_tipo_de_logradouro"`
	Logradouro          text `json:"logradouro"`
	Numero              text `json:"numero"`
	Complemento         text `json:"complemento"`
	Bairro              text `json:"bairro"`
	Municipio           text `json:"municipio"`
	UF                  text `json:"uf"`
	Email               text `json:"email"`
	DDDTelefone1        text `json:"ddd_telefone_1"`
}

// FetchCompany GET /api/cnpj/v1/{cnpj}.
func (p *BrasilAPI) FetchCompany(ctx context.Context, cnpj string) (*entity.CompanyRecord, error) {
	var r brasilAPIResponse
	if err := p.http.GetJSON(ctx, fmt.Sprintf("%s/api/cnpj/v1/%s", p.baseURL, cnpj), &r); err != nil {
		return nil, classify(err)
	}
	if r.RazaoSocial == "" {
		return nil, ports.ErrLookupNotFound
	}
	street := r.Logradouro.String()
	if tipo := r.DescTipoLogradouro.String(); tipo != "" && !strings.HasPrefix(strings.ToUpper(street), strings.ToUpper(tipo)) {
		street = joinNonEmpty(" ", tipo, street)
	}
	return &entity.CompanyRecord{
		LegalName:    r.RazaoSocial.String(),
		TradeName:    r.NomeFantasia.String(),
		CNAECode:     r.CNAEFiscal.String(),
		CNAEDesc:     r.CNAEFiscalDescricao.String(),
		PostalCode:   r.CEP.String(),
		Street:       street,
		Number:       r.Numero.String(),
		Neighborhood: r.Bairro.String(),
		City:         r.Municipio.String(),
		State:        r.UF.String(),
		Complement:   r.Complemento.String(),
		Email:        r.Email.String(),
		Phone:        r.DDDTelefone1.String(),
	}, nil
}
