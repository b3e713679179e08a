package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
)

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierRepository) GetByEmail(ctx context.Context, email string) (*entity.Supplier, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) List(ctx context.Context, f entity.SupplierFilter) ([]*entity.Supplier, int, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.Supplier)
	return list, args.Int(1), args.Error(2)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	args := m.Called(ctx, supplierID)
	return args.Int(0), args.Error(1)
}

// inlineTx ejecuta fn con los mismos repos, sin transacción real.
type inlineTx struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
}

func (tx inlineTx) Run(_ context.Context, fn func(repository.SupplierRepository, repository.ProductRepository) error) error {
	return fn(tx.suppliers, tx.products)
}

type MockSheetGenerator struct {
	mock.Mock
}

func (m *MockSheetGenerator) GenerateSupplierSheet(ctx context.Context, s *entity.Supplier, products []*entity.Product) ([]byte, error) {
	args := m.Called(ctx, s, products)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
