//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
	"github.com/jhoicas/eproc-api/pkg/config"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "eproc",
			"POSTGRES_USER":     "eproc",
			"POSTGRES_PASSWORD": "eproc",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{
		Host: host, Port: port.Int(), User: "eproc", Password: "eproc", DBName: "eproc", SSLMode: "disable",
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func newSupplier(name, email string) *entity.Supplier {
	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &entity.Supplier{
		ID:         uuid.New().String(),
		PersonType: entity.PersonJuridica,
		Name:       name,
		Email:      email,
		Address:    entity.Address{PostalCode: "01310-100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Address.SetCoordinates(entity.Coordinates{Latitude: -23.561, Longitude: -46.656})
	return s
}

func TestPostgres_SupplierAndProductLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	pool := setupTestDatabase(t)
	ctx := context.Background()
	suppliers := NewSupplierRepository(pool)
	products := NewProductRepository(pool)

	acme := newSupplier("ACME Comércio", "contato@acme.com.br")
	require.NoError(t, suppliers.Create(ctx, acme))
	require.NoError(t, suppliers.Create(ctx, newSupplier("Beta Papelaria", "vendas@beta.com.br")))
	assert.ErrorIs(t, suppliers.Create(ctx, newSupplier("Outra", "CONTATO@acme.com.br")), domain.ErrDuplicate)

	got, err := suppliers.GetByEmail(ctx, "Contato@Acme.com.br")
	require.NoError(t, err)
	require.NotNil(t, got)
	coords, ok := got.Address.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, -23.561, coords.Latitude, 1e-9)

	list, total, err := suppliers.List(ctx, entity.SupplierFilter{Search: "papel", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Beta Papelaria", list[0].Name)

	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.New().String(), SupplierID: acme.ID, SKU: "PAP-A4-500", Name: "Papel A4",
		NCMCode: "48025610", Unit: "CX", UnitPrice: decimal.RequireFromString("25.90"),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, products.Create(ctx, p))
	n, err := products.CountBySupplier(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, suppliers.Delete(ctx, acme.ID), domain.ErrSupplierHasProducts)

	analytics := NewAnalyticsRepository(pool)
	counts, err := analytics.GetCatalogCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.CatalogCounts{Suppliers: 2, Products: 1}, counts)
	top, err := analytics.GetTopSuppliers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, acme.ID, top[0].SupplierID)
	assert.True(t, top[0].CatalogValue.Equal(decimal.RequireFromString("25.90")))

	require.NoError(t, NewTxRunner(pool).Run(ctx, func(s repository.SupplierRepository, pr repository.ProductRepository) error {
		if err := pr.Delete(ctx, p.ID); err != nil {
			return err
		}
		return s.Delete(ctx, acme.ID)
	}))
	gone, err := suppliers.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostgres_Users(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	pool := setupTestDatabase(t)
	ctx := context.Background()
	users := NewUserRepository(pool)

	now := time.Now().UTC()
	u := &entity.User{ID: uuid.New().String(), Email: "admin@eproc.com", PasswordHash: "x", Name: "Admin",
		Role: entity.RoleAdmin, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(ctx, u))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: uuid.New().String(), Email: "ADMIN@eproc.com",
		PasswordHash: "y", Name: "Dup", Role: entity.RoleBuyer, CreatedAt: now, UpdatedAt: now}), domain.ErrEmailAlreadyExists)

	got, err := users.GetByEmail(ctx, "admin@EPROC.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	missing, err := users.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
