// Package enrichment completa datos de proveedores a partir de servicios públicos
// brasileños: directorio de CEP, geocodificación, registro de CNPJ y catálogos CNAE/NCM.
//
// Ninguna operación devuelve error al llamador por fallos del proveedor externo:
// el resultado se expresa en un Outcome y los fallos quedan registrados en el log.
package enrichment

// Status estado de una operación de enriquecimiento.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusApplied   Status = "applied"
	StatusUnchanged Status = "unchanged"
)

// Outcome resultado de una consulta.
// Unavailable indica que ningún proveedor pudo responder (red, timeout, 5xx);
// es informativo y nunca bloquea el envío del formulario.
type Outcome struct {
	Status      Status `json:"status"`
	Unavailable bool   `json:"unavailable"`
	Source      string `json:"source,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
}

func applied(source string) Outcome {
	return Outcome{Status: StatusApplied, Source: source}
}

func unchanged(unavailable bool) Outcome {
	return Outcome{Status: StatusUnchanged, Unavailable: unavailable}
}

func idle() Outcome {
	return Outcome{Status: StatusIdle}
}
