package entity

// CatalogKind identifica el catálogo de clasificación.
type CatalogKind string

const (
	CatalogCNAE CatalogKind = "cnae" // actividad económica (IBGE)
	CatalogNCM  CatalogKind = "ncm"  // nomenclatura de mercaderías
)

// ClassificationEntry entrada de un catálogo CNAE o NCM.
// Activities solo se completa para CNAE (palabras clave de la subclase).
type ClassificationEntry struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Activities  []string `json:"-"`
}
