package ports

import (
	"context"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// SupplierSheetGenerator genera la ficha de registro del proveedor en PDF.
type SupplierSheetGenerator interface {
	GenerateSupplierSheet(ctx context.Context, s *entity.Supplier, products []*entity.Product) ([]byte, error)
}
