// Package cnpj adaptadores de los registros públicos de CNPJ:
// publica.cnpj.ws, BrasilAPI y ReceitaWS. Cada uno normaliza su respuesta a entity.CompanyRecord.
package cnpj

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/infrastructure/httpjson"
)

// text acepta un valor JSON string, número o null y lo expone como string.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

func (t text) String() string { return string(t) }

// classify traduce 404 a ports.ErrLookupNotFound; el resto se devuelve tal cual.
func classify(err error) error {
	if httpjson.IsStatus(err, http.StatusNotFound) {
		return ports.ErrLookupNotFound
	}
	return err
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
