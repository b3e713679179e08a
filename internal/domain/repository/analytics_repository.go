package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogCounts totales del catálogo de compras.
type CatalogCounts struct {
	Suppliers int
	Products  int
}

// SupplierRankingResult resultado crudo del ranking de proveedores por catálogo.
type SupplierRankingResult struct {
	SupplierID   string
	SupplierName string
	ProductCount int
	CatalogValue decimal.Decimal // suma de precios unitarios de sus productos
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	GetCatalogCounts(ctx context.Context) (CatalogCounts, error)

	// GetTopSuppliers devuelve los `limit` proveedores con más productos,
	// desempatando por valor de catálogo descendente.
	GetTopSuppliers(ctx context.Context, limit int) ([]SupplierRankingResult, error)
}
