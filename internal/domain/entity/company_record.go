package entity

// CompanyRecord ficha normalizada de una empresa obtenida del registro de CNPJ,
// independiente del proveedor que la haya respondido.
type CompanyRecord struct {
	Document     string `json:"document"` // 14 dígitos
	LegalName    string `json:"legal_name"`
	TradeName    string `json:"trade_name"`
	CNAECode     string `json:"cnae_code"` // solo dígitos
	CNAEDesc     string `json:"cnae_description"`
	PostalCode   string `json:"postal_code"` // solo dígitos
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Complement   string `json:"complement"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Source       string `json:"source"` // proveedor que respondió
}

// Address proyecta la parte de dirección de la ficha.
func (r CompanyRecord) Address() Address {
	return Address{
		PostalCode:   r.PostalCode,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
	}
}
