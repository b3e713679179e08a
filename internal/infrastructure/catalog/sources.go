// Package catalog fuentes públicas de los catálogos de clasificación:
// subclases CNAE del IBGE y nomenclatura NCM de BrasilAPI.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/infrastructure/httpjson"
)

var (
	_ ports.ClassificationSource = (*IBGECNAE)(nil)
	_ ports.ClassificationSource = (*BrasilAPINCM)(nil)
)

// IBGECNAE descarga GET {base}/api/v2/cnae/subclasses (~1300 subclases).
type IBGECNAE struct {
	baseURL string
	http    *httpjson.Client
}

// NewIBGECNAE construye la fuente CNAE.
func NewIBGECNAE(baseURL string, timeout time.Duration) *IBGECNAE {
	return &IBGECNAE{baseURL: strings.TrimRight(baseURL, "/"), http: httpjson.New(timeout, nil)}
}

func (s *IBGECNAE) Kind() entity.CatalogKind { return entity.CatalogCNAE }

type ibgeSubclass struct {
	ID         string   `json:"id"`
	Descricao  string   `json:"descricao"`
	Atividades []string `json:"atividades"`
}

// FetchAll devuelve todas las subclases; el código se conserva tal como lo publica el IBGE (7 dígitos).
func (s *IBGECNAE) FetchAll(ctx context.Context) ([]entity.ClassificationEntry, error) {
	var raw []ibgeSubclass
	if err := s.http.GetJSON(ctx, s.baseURL+"/api/v2/cnae/subclasses", &raw); err != nil {
		return nil, err
	}
	out := make([]entity.ClassificationEntry, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}
		out = append(out, entity.ClassificationEntry{
			Code:        r.ID,
			Description: strings.TrimSpace(r.Descricao),
			Activities:  r.Atividades,
		})
	}
	return out, nil
}

// BrasilAPINCM descarga GET {base}/api/ncm/v1 (~13 mil códigos).
type BrasilAPINCM struct {
	baseURL string
	http    *httpjson.Client
}

// NewBrasilAPINCM construye la fuente NCM.
func NewBrasilAPINCM(baseURL string, timeout time.Duration) *BrasilAPINCM {
	return &BrasilAPINCM{baseURL: strings.TrimRight(baseURL, "/"), http: httpjson.New(timeout, nil)}
}

func (s *BrasilAPINCM) Kind() entity.CatalogKind { return entity.CatalogNCM }

type ncmItem struct {
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
}

// FetchAll devuelve la nomenclatura completa, incluidos los niveles de capítulo y posición.
func (s *BrasilAPINCM) FetchAll(ctx context.Context) ([]entity.ClassificationEntry, error) {
	var raw []ncmItem
	if err := s.http.GetJSON(ctx, s.baseURL+"/api/ncm/v1", &raw); err != nil {
		return nil, err
	}
	out := make([]entity.ClassificationEntry, 0, len(raw))
	for _, r := range raw {
		if r.Codigo == "" {
			continue
		}
		out = append(out, entity.ClassificationEntry{
			Code:        r.Codigo,
			Description: strings.TrimSpace(r.Descricao),
		})
	}
	return out, nil
}
