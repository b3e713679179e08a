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

var _ ports.CompanyProvider = (*ReceitaWS)(nil)

// ReceitaWS consulta https://www.receitaws.com.br/v1/cnpj/{cnpj}.
// Responde 200 con status "ERROR" cuando el CNPJ no existe o es inválido.
type ReceitaWS struct {
	baseURL string
	http    *httpjson.Client
}

// NewReceitaWS construye el proveedor.
func NewReceitaWS(baseURL string, timeout time.Duration) *ReceitaWS {
	return &ReceitaWS{baseURL: strings.TrimRight(baseURL, "/"), http: httpjson.New(timeout, nil)}
}

// Name identificador del proveedor.
func (p *ReceitaWS) Name() string { return "receitaws" }

type receitaWSResponse struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	Nome               text   `json:"nome"`
	Fantasia           text   `json:"fantasia"`
	AtividadePrincipal []struct {
		Code text `json:"code"`
		Text text `json:"text"`
	} `json:"atividade_principal"`
	CEP         text `json:"cep"`
	Logradouro  text `json:"logradouro"`
	Numero      text `json:"numero"`
	Complemento text `json:"complemento"`
	Bairro      text `json:"bairro"`
	Municipio   text `json:"municipio"`
	UF          text `json:"uf"`
	Email       text `json:"email"`
	Telefone    text `json:"telefone"`
}

// FetchCompany GET /v1/cnpj/{cnpj}.
func (p *ReceitaWS) FetchCompany(ctx context.Context, cnpj string) (*entity.CompanyRecord, error) {
	var r receitaWSResponse
	if err := p.http.GetJSON(ctx, fmt.Sprintf("%s/v1/cnpj/%s", p.baseURL, cnpj), &r); err != nil {
		return nil, classify(err)
	}
	if strings.EqualFold(r.Status, "ERROR") {
		return nil, fmt.Errorf("%w: %s", ports.ErrLookupNotFound, r.Message)
	}
	rec := &entity.CompanyRecord{
		LegalName:    r.Nome.String(),
		TradeName:    r.Fantasia.String(),
		PostalCode:   r.CEP.String(),
		Street:       r.Logradouro.String(),
		Number:       r.Numero.String(),
		Neighborhood: r.Bairro.String(),
		City:         r.Municipio.String(),
		State:        r.UF.String(),
		Complement:   r.Complemento.String(),
		Email:        r.Email.String(),
		Phone:        r.Telefone.String(),
	}
	if len(r.AtividadePrincipal) > 0 {
		rec.CNAECode = r.AtividadePrincipal[0].Code.String()
		rec.CNAEDesc = r.AtividadePrincipal[0].Text.String()
	}
	if rec.LegalName == "" {
		return nil, ports.ErrLookupNotFound
	}
	return rec, nil
}
