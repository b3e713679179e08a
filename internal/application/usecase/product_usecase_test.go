package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

func newProductUC() (*ProductUseCase, *MockProductRepository, *MockSupplierRepository) {
	pr := new(MockProductRepository)
	sr := new(MockSupplierRepository)
	return NewProductUseCase(pr, sr), pr, sr
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc, pr, sr := newProductUC()
	sr.On("GetByID", ctx, "s1").Return(&entity.Supplier{ID: "s1"}, nil)
	pr.On("GetBySKU", ctx, "PAP-A4-500").Return(nil, nil)
	pr.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	out, err := uc.Create(ctx, dto.CreateProductRequest{
		SupplierID: "s1", SKU: " PAP-A4-500 ", Name: "Papel A4", NCMCode: "4802.56.10",
		UnitPrice: decimal.RequireFromString("25.904"),
	})

	require.NoError(t, err)
	assert.Equal(t, "PAP-A4-500", out.SKU)
	assert.Equal(t, "48025610", out.NCMCode)
	assert.Equal(t, defaultUnit, out.Unit)
	assert.True(t, out.UnitPrice.Equal(decimal.RequireFromString("25.90")))
}

func TestProductUseCase_CreateRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("proveedor inexistente", func(t *testing.T) {
		uc, _, sr := newProductUC()
		sr.On("GetByID", ctx, "s9").Return(nil, nil)

		_, err := uc.Create(ctx, dto.CreateProductRequest{SupplierID: "s9", SKU: "X", Name: "X"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SKU duplicado", func(t *testing.T) {
		uc, pr, sr := newProductUC()
		sr.On("GetByID", ctx, "s1").Return(&entity.Supplier{ID: "s1"}, nil)
		pr.On("GetBySKU", ctx, "X").Return(&entity.Product{ID: "p1"}, nil)

		_, err := uc.Create(ctx, dto.CreateProductRequest{SupplierID: "s1", SKU: "X", Name: "X"})

		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("precio negativo", func(t *testing.T) {
		uc, pr, sr := newProductUC()
		sr.On("GetByID", ctx, "s1").Return(&entity.Supplier{ID: "s1"}, nil)
		pr.On("GetBySKU", ctx, "X").Return(nil, nil)

		_, err := uc.Create(ctx, dto.CreateProductRequest{SupplierID: "s1", SKU: "X", Name: "X", UnitPrice: decimal.NewFromInt(-1)})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestProductUseCase_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	uc, pr, _ := newProductUC()
	pr.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", SKU: "A", Name: "Antigo", Unit: "UN"}, nil)
	pr.On("GetBySKU", ctx, "B").Return(nil, nil)
	pr.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	sku, unit := "B", "cx"
	price := decimal.RequireFromString("2.5")
	out, err := uc.Update(ctx, "p1", dto.UpdateProductRequest{SKU: &sku, Unit: &unit, UnitPrice: &price})

	require.NoError(t, err)
	assert.Equal(t, "B", out.SKU)
	assert.Equal(t, "Antigo", out.Name)
	assert.Equal(t, "CX", out.Unit)
	assert.True(t, out.UnitPrice.Equal(price))
}

func TestProductUseCase_UpdateSKUConflict(t *testing.T) {
	ctx := context.Background()
	uc, pr, _ := newProductUC()
	pr.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", SKU: "A"}, nil)
	pr.On("GetBySKU", ctx, "B").Return(&entity.Product{ID: "p2", SKU: "B"}, nil)

	sku := "B"
	_, err := uc.Update(ctx, "p1", dto.UpdateProductRequest{SKU: &sku})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	pr.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUseCase_ListFiltersBySupplier(t *testing.T) {
	ctx := context.Background()
	uc, pr, _ := newProductUC()
	pr.On("List", ctx, entity.ProductFilter{SupplierID: "s1", Limit: 100, Offset: 0}).Return([]*entity.Product{}, 0, nil)

	out, err := uc.List(ctx, "", "s1", 0, 500)

	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 100, out.Page.Limit)
}
