package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/eproc-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de compras.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetCatalogCounts total de proveedores y productos registrados.
func (r *AnalyticsRepo) GetCatalogCounts(ctx context.Context) (repository.CatalogCounts, error) {
	var c repository.CatalogCounts
	err := r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM suppliers), (SELECT count(*) FROM products)`,
	).Scan(&c.Suppliers, &c.Products)
	if err != nil {
		return c, fmt.Errorf("analytics.GetCatalogCounts: %w", err)
	}
	return c, nil
}

// GetTopSuppliers ranking de proveedores por cantidad de productos y valor de catálogo.
func (r *AnalyticsRepo) GetTopSuppliers(ctx context.Context, limit int) ([]repository.SupplierRankingResult, error) {
	const query = `
	SELECT
	    s.id,
	    s.name,
	    count(p.id)                        AS product_count,
	    COALESCE(SUM(p.unit_price), 0)     AS catalog_value
	FROM suppliers s
	LEFT JOIN products p ON p.supplier_id = s.id
	GROUP BY s.id, s.name
	ORDER BY product_count DESC, catalog_value DESC, s.name
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopSuppliers: %w", err)
	}
	defer rows.Close()

	results := []repository.SupplierRankingResult{}
	for rows.Next() {
		var item repository.SupplierRankingResult
		if err := rows.Scan(&item.SupplierID, &item.SupplierName, &item.ProductCount, &item.CatalogValue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopSuppliers scan: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopSuppliers rows: %w", err)
	}
	return results, nil
}
