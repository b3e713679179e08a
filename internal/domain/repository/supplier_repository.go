package repository

import (
	"context"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByEmail(ctx context.Context, email string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	// List devuelve la página pedida y el total de coincidencias (sin paginar).
	List(ctx context.Context, f entity.SupplierFilter) ([]*entity.Supplier, int, error)
	Delete(ctx context.Context, id string) error
}
