// Package pdf genera la ficha de registro del proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + CNPJ/CPF  │  Ficha + fecha de alta    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS FISCALES: régimen / IE / IM / CNAE                    │
//	│  CONTACTO: email / teléfono / sitio                          │
//	│  DIRECCIÓN: calle, número, barrio, ciudad/UF, CEP  │  QR geo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | NCM | Unidad | Precio               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
)

var _ ports.SupplierSheetGenerator = (*SupplierSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SupplierSheetGenerator implementa ports.SupplierSheetGenerator con Maroto v2.
type SupplierSheetGenerator struct {
	now func() time.Time
}

// NewSupplierSheetGenerator construye el generador.
func NewSupplierSheetGenerator() *SupplierSheetGenerator {
	return &SupplierSheetGenerator{now: time.Now}
}

// GenerateSupplierSheet genera la ficha y devuelve los bytes del PDF.
func (g *SupplierSheetGenerator) GenerateSupplierSheet(_ context.Context, s *entity.Supplier, products []*entity.Product) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: proveedor nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha cadastral de fornecedor", true).
		WithAuthor("e-Procurement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fiscalRow(s))
	m.AddRows(contactRow(s))
	m.AddRows(addressRow(s.Address))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("PRODUTOS (%d)", len(products))))
	if len(products) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Nenhum produto cadastrado.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(productRows(products)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(s *entity.Supplier, now time.Time) core.Row {
	label := "CNPJ: "
	if s.PersonType == entity.PersonFisica {
		label = "CPF: "
	}
	doc := nonEmpty(brdoc.FormatDocument(s.Document), "-")
	registered := "-"
	if !s.CreatedAt.IsZero() {
		registered = s.CreatedAt.Format("02/01/2006")
	}
	return row.New(20).Add(
		col.New(8).Add(
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(s.TradeName, s.Name), props.Text{Size: 9, Top: 8}),
			text.New(label+doc, props.Text{Size: 9, Top: 13, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("FICHA CADASTRAL", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Cadastro: "+registered, props.Text{Size: 8, Align: align.Right, Top: 7}),
			text.New("Emitida em "+now.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func fiscalRow(s *entity.Supplier) core.Row {
	cnae := "-"
	if s.CNAECode != "" {
		cnae = strings.TrimSpace(s.CNAECode + " " + s.CNAEDescription)
	}
	return row.New(16).Add(col.New(12).Add(
		text.New("DADOS FISCAIS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Regime: %s   |   IE: %s (%s)   |   IM: %s",
			nonEmpty(s.TaxRegime, "-"),
			nonEmpty(s.StateRegistration, "-"),
			nonEmpty(s.IEIndicator, "-"),
			nonEmpty(s.MunicipalRegistration, "-"),
		), props.Text{Size: 8, Top: 6, Color: colorGray}),
		text.New("CNAE: "+cnae, props.Text{Size: 8, Top: 11, Color: colorGray}),
	))
}

func contactRow(s *entity.Supplier) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("CONTATO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Site: %s",
			nonEmpty(s.Email, "-"),
			nonEmpty(s.Phone, "-"),
			nonEmpty(s.Website, "-"),
		), props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

// addressRow incluye un QR geo: cuando la dirección está geocodificada.
func addressRow(a entity.Address) core.Row {
	lines := col.New(8).Add(
		text.New("ENDEREÇO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(formatStreet(a), "-"), props.Text{Size: 8, Top: 6}),
		text.New(nonEmpty(formatCity(a), "-"), props.Text{Size: 8, Top: 11}),
		text.New("CEP "+nonEmpty(brdoc.FormatCEP(a.PostalCode), "-"), props.Text{Size: 8, Top: 16, Color: colorGray}),
	)
	c, ok := a.Coordinates()
	if !ok {
		return row.New(22).Add(lines, col.New(4))
	}
	return row.New(32).Add(
		lines,
		col.New(4).Add(
			code.NewQr(GeoURI(c), props.Rect{Percent: 80, Center: true}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Produto", 5, align.Left),
		h("NCM", 2, align.Center),
		h("Un.", 1, align.Center),
		h("Preço", 2, align.Right),
	)
}

func productRows(products []*entity.Product) []core.Row {
	out := make([]core.Row, 0, len(products))
	for _, p := range products {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(brdoc.FormatNCM(p.NCMCode), "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(p.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(FormatBRL(p.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func formatStreet(a entity.Address) string {
	s := a.Street
	if a.Number != "" {
		s += ", " + a.Number
	}
	if a.Complement != "" {
		s += " - " + a.Complement
	}
	if a.Neighborhood != "" {
		s += " - " + a.Neighborhood
	}
	return strings.Trim(s, " ,-")
}

func formatCity(a entity.Address) string {
	if a.State == "" {
		return a.City
	}
	if a.City == "" {
		return a.State
	}
	return a.City + "/" + a.State
}

// GeoURI geo:lat,lon (RFC 5870) con 6 decimales.
func GeoURI(c entity.Coordinates) string {
	return fmt.Sprintf("geo:%.6f,%.6f", c.Latitude, c.Longitude)
}

// FormatBRL 4500.5 -> "R$ 4.500,50".
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles. Ej: "1000000" -> "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
