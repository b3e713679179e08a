package dto

import "time"

// AddressDTO dirección de proveedor en entrada y salida.
type AddressDTO struct {
	PostalCode   string   `json:"postal_code" validate:"omitempty,cep"`
	Street       string   `json:"street" validate:"max=200"`
	Number       string   `json:"number" validate:"max=20"`
	Complement   string   `json:"complement" validate:"max=100"`
	Neighborhood string   `json:"neighborhood" validate:"max=100"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"omitempty,len=2,alpha"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	PersonType            string     `json:"person_type" validate:"omitempty,oneof=FISICA JURIDICA"`
	Document              string     `json:"document" validate:"omitempty,max=20"`
	Name                  string     `json:"name" validate:"required,min=2,max=200"`
	TradeName             string     `json:"trade_name" validate:"max=200"`
	StateRegistration     string     `json:"state_registration" validate:"max=30"`
	MunicipalRegistration string     `json:"municipal_registration" validate:"max=30"`
	CNAECode              string     `json:"cnae_code" validate:"omitempty,cnae"`
	CNAEDescription       string     `json:"cnae_description" validate:"max=300"`
	TaxRegime             string     `json:"tax_regime" validate:"omitempty,oneof=SIMPLES_NACIONAL LUCRO_PRESUMIDO LUCRO_REAL"`
	IEIndicator           string     `json:"ie_indicator" validate:"omitempty,oneof=CONTRIBUINTE ISENTO NAO_CONTRIBUINTE"`
	Address               AddressDTO `json:"address"`
	Email                 string     `json:"email" validate:"required,email"`
	Phone                 string     `json:"phone" validate:"max=30"`
	Website               string     `json:"website" validate:"omitempty,url"`
	Observations          string     `json:"observations" validate:"max=2000"`
}

// UpdateSupplierRequest reemplaza los datos del proveedor (mismas reglas que el alta).
type UpdateSupplierRequest = CreateSupplierRequest

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID                    string     `json:"id"`
	PersonType            string     `json:"person_type"`
	Document              string     `json:"document"`
	Name                  string     `json:"name"`
	TradeName             string     `json:"trade_name"`
	StateRegistration     string     `json:"state_registration"`
	MunicipalRegistration string     `json:"municipal_registration"`
	CNAECode              string     `json:"cnae_code"`
	CNAEDescription       string     `json:"cnae_description"`
	TaxRegime             string     `json:"tax_regime"`
	IEIndicator           string     `json:"ie_indicator"`
	Address               AddressDTO `json:"address"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	Website               string     `json:"website"`
	Observations          string     `json:"observations"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
