package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SupplierID     string          `json:"supplier_id" validate:"required,uuid"`
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description" validate:"max=2000"`
	NCMCode        string          `json:"ncm_code" validate:"omitempty,ncm"`
	NCMDescription string          `json:"ncm_description" validate:"max=300"`
	Unit           string          `json:"unit" validate:"omitempty,max=10"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	SKU            *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" validate:"omitempty,max=2000"`
	NCMCode        *string          `json:"ncm_code" validate:"omitempty,ncm"`
	NCMDescription *string          `json:"ncm_description" validate:"omitempty,max=300"`
	Unit           *string          `json:"unit" validate:"omitempty,max=10"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	SupplierID     string          `json:"supplier_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	NCMCode        string          `json:"ncm_code"`
	NCMDescription string          `json:"ncm_description"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
