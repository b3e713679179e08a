package dto

// LookupResponse resultado de una consulta de enriquecimiento aplicada.
// Source identifica el proveedor que respondió (viacep, cnpjws, brasilapi, receitaws, nominatim, cache).
type LookupResponse struct {
	Result   interface{} `json:"result"`
	Source   string      `json:"source"`
	Strategy string      `json:"strategy,omitempty"`
}

// CatalogSearchResponse entradas CNAE o NCM que coinciden con la búsqueda.
type CatalogSearchResponse struct {
	Kind  string            `json:"kind"`
	Query string            `json:"query"`
	Items []CatalogEntryDTO `json:"items"`
}

// CatalogEntryDTO una entrada del catálogo.
type CatalogEntryDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// SelectCNAERequest actividad elegida en el buscador del borrador.
type SelectCNAERequest struct {
	Code        string `json:"code" validate:"required,cnae"`
	Description string `json:"description" validate:"required,max=300"`
}
