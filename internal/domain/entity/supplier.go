package entity

import "time"

// Tipo de persona del proveedor.
const (
	PersonFisica   = "FISICA"
	PersonJuridica = "JURIDICA"
)

// Régimen tributario.
const (
	TaxSimplesNacional = "SIMPLES_NACIONAL"
	TaxLucroPresumido  = "LUCRO_PRESUMIDO"
	TaxLucroReal       = "LUCRO_REAL"
)

// Indicador de inscripción estatal (IE).
const (
	IEContribuinte    = "CONTRIBUINTE"
	IEIsento          = "ISENTO"
	IENaoContribuinte = "NAO_CONTRIBUINTE"
)

// Supplier proveedor registrado en el portal.
type Supplier struct {
	ID                    string
	PersonType            string
	Document              string // CPF o CNPJ, solo dígitos
	Name                  string // razón social o nombre
	TradeName             string
	StateRegistration     string
	MunicipalRegistration string
	CNAECode              string
	CNAEDescription       string
	TaxRegime             string
	IEIndicator           string
	Address               Address
	Email                 string
	Phone                 string // E.164 cuando es válido
	Website               string
	Observations          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SupplierFilter criterios de listado de proveedores.
type SupplierFilter struct {
	Search string // nombre o email, case-insensitive
	Limit  int
	Offset int
}
