package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/dto"
)

func TestValidator_BrazilianRules(t *testing.T) {
	val := NewValidator()

	ok := dto.CreateSupplierRequest{
		Name: "ACME", Email: "contato@acme.com.br", CNAECode: "62.01-5-01",
		Address: dto.AddressDTO{PostalCode: "01310-100", State: "SP"},
	}
	assert.Nil(t, val.Validate(ok))

	bad := ok
	bad.CNAECode = "62015"
	bad.Address.PostalCode = "0131010A"
	fields := val.Validate(bad)
	require.Len(t, fields, 2)
	assert.ElementsMatch(t, []dto.FieldError{
		{Field: "cnae_code", Rule: "cnae"},
		{Field: "address.postal_code", Rule: "cep"},
	}, fields)
}

func TestValidator_NCM(t *testing.T) {
	val := NewValidator()
	in := dto.CreateProductRequest{
		SupplierID: "5f0c6c38-8c3e-4c1e-9b39-2b1c1e0a9d11", SKU: "PAP-A4-500", Name: "Papel A4", NCMCode: "4802.56.10",
	}
	assert.Nil(t, val.Validate(in))

	in.NCMCode = "4802"
	fields := val.Validate(in)
	require.Len(t, fields, 1)
	assert.Equal(t, "ncm_code", fields[0].Field)
}
