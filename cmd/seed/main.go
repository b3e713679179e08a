// seed carga los datos de demostración: usuario administrador, un proveedor y tres productos.
// Es idempotente: lo que ya existe se deja como está.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eproc-api/internal/application/auth"
	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/usecase"
	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/eproc-api/pkg/config"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

const demoSupplierEmail = "contato@fornecedordemo.com.br"

var demoProducts = []dto.CreateProductRequest{
	{SKU: "PAP-A4-500", Name: "Papel A4 500 folhas", NCMCode: "48025610", Unit: "PCT", UnitPrice: decimal.RequireFromString("25.90")},
	{SKU: "CAN-ESF-AZ", Name: "Caneta esferográfica azul", NCMCode: "96081000", Unit: "UN", UnitPrice: decimal.RequireFromString("2.50")},
	{SKU: "NOT-DELL-LAT", Name: "Notebook Dell Latitude", NCMCode: "84713012", Unit: "UN", UnitPrice: decimal.RequireFromString("4500.00")},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo, postgres.NewTxRunner(pool), nil)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)

	_, err = authUC.RegisterAdmin(ctx, dto.RegisterRequest{Name: "Administrador", Email: "admin@eproc.com", Password: "admin123"})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Msg("usuario admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario admin")
	default:
		log.Info().Str("email", "admin@eproc.com").Msg("usuario admin creado")
	}

	supplierID, err := ensureSupplier(ctx, supplierUC, supplierRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("crear proveedor demo")
	}

	for _, p := range demoProducts {
		p.SupplierID = supplierID
		if _, err := productUC.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Info().Str("sku", p.SKU).Msg("producto ya existe")
				continue
			}
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto")
		}
		log.Info().Str("sku", p.SKU).Msg("producto creado")
	}
	log.Info().Msg("seed completado")
}

func ensureSupplier(ctx context.Context, uc *usecase.SupplierUseCase, repo *postgres.SupplierRepo) (string, error) {
	existing, err := repo.GetByEmail(ctx, demoSupplierEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	out, err := uc.Create(ctx, dto.CreateSupplierRequest{
		PersonType:      "JURIDICA",
		Document:        "11222333000181",
		Name:            "Fornecedor Demo Ltda",
		TradeName:       "Fornecedor Demo",
		CNAECode:        "4761003",
		CNAEDescription: "Comércio varejista de artigos de papelaria",
		TaxRegime:       "SIMPLES_NACIONAL",
		IEIndicator:     "CONTRIBUINTE",
		Email:           demoSupplierEmail,
		Phone:           "(11) 3222-3333",
		Address: dto.AddressDTO{
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			Number:       "1000",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
		},
	})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
