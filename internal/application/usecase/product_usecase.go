package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
)

const defaultUnit = "UN"

// ProductUseCase casos de uso CRUD para productos del catálogo de compras.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create crea un producto. El proveedor debe existir y el SKU no puede repetirse.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	sku := strings.TrimSpace(in.SKU)
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	unit := strings.ToUpper(strings.TrimSpace(in.Unit))
	if unit == "" {
		unit = defaultUnit
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SupplierID:     supplier.ID,
		SKU:            sku,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		NCMCode:        brdoc.OnlyDigits(in.NCMCode),
		NCMDescription: in.NCMDescription,
		Unit:           unit,
		UnitPrice:      in.UnitPrice.Round(2),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes en la entrada.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.NCMCode != nil {
		product.NCMCode = brdoc.OnlyDigits(*in.NCMCode)
	}
	if in.NCMDescription != nil {
		product.NCMDescription = *in.NCMDescription
	}
	if in.Unit != nil {
		product.Unit = strings.ToUpper(strings.TrimSpace(*in.Unit))
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = in.UnitPrice.Round(2)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda opcional y filtro por proveedor.
func (uc *ProductUseCase) List(ctx context.Context, search, supplierID string, page, limit int) (*dto.ProductListResponse, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := uc.repo.List(ctx, entity.ProductFilter{
		Search:     strings.TrimSpace(search),
		SupplierID: supplierID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(page, limit, total)}, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		SupplierID:     p.SupplierID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		NCMCode:        p.NCMCode,
		NCMDescription: p.NCMDescription,
		Unit:           p.Unit,
		UnitPrice:      p.UnitPrice,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

