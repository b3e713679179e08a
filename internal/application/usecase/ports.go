package usecase

import (
	"context"

	"github.com/jhoicas/eproc-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de proveedores y productos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		supplierRepo repository.SupplierRepository,
		productRepo repository.ProductRepository,
	) error) error
}
