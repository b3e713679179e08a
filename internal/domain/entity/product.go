package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de compras, suministrado por un proveedor.
type Product struct {
	ID             string
	SupplierID     string
	SKU            string // código único global
	Name           string
	Description    string
	NCMCode        string // 8 dígitos
	NCMDescription string
	Unit           string // UN, CX, KG...
	UnitPrice      decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string
	SupplierID string
	Limit      int
	Offset     int
}
