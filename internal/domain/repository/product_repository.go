package repository

import (
	"context"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
