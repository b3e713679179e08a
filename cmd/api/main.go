package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/eproc-api/docs"
	appanalytics "github.com/jhoicas/eproc-api/internal/application/analytics"
	"github.com/jhoicas/eproc-api/internal/application/auth"
	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/application/onboarding"
	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/application/usecase"
	"github.com/jhoicas/eproc-api/internal/infrastructure/cache"
	"github.com/jhoicas/eproc-api/internal/infrastructure/catalog"
	"github.com/jhoicas/eproc-api/internal/infrastructure/cnpj"
	"github.com/jhoicas/eproc-api/internal/infrastructure/nominatim"
	infrapdf "github.com/jhoicas/eproc-api/internal/infrastructure/pdf"
	"github.com/jhoicas/eproc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/eproc-api/internal/infrastructure/viacep"
	httpRouter "github.com/jhoicas/eproc-api/internal/interfaces/http"
	"github.com/jhoicas/eproc-api/pkg/config"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

// @title                       eProc API
// @version                     1.0
// @description                 Alta de proveedores con enriquecimiento automático (CEP, CNPJ, geocodificación, CNAE/NCM), catálogo de productos y panel de compras.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Caché de CEP/CNPJ: Redis si hay REDIS_URL; si no, sin caché.
	var lookupCache ports.LookupCache = cache.Nop{}
	if cfg.Redis.URL != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			lookupCache = cache.NewRedisCache(rdb)
		}
	}

	enr := cfg.Enrichment
	postalSvc := enrichment.NewPostalService(
		viacep.NewClient(enr.ViaCEPBaseURL, enr.HTTPTimeout),
		lookupCache, cfg.Redis.TTL, log,
	)
	geocodeSvc := enrichment.NewGeocodeService(
		nominatim.NewClient(enr.NominatimBaseURL, enr.NominatimAgent, enr.NominatimRPS, enr.HTTPTimeout),
		enr.StrategyDelay, log,
	)
	// Orden de consulta: publica.cnpj.ws, BrasilAPI, ReceitaWS.
	registrySvc := enrichment.NewRegistryService([]ports.CompanyProvider{
		cnpj.NewCNPJWS(enr.CNPJWSBaseURL, enr.HTTPTimeout),
		cnpj.NewBrasilAPI(enr.BrasilAPIBaseURL, enr.HTTPTimeout),
		cnpj.NewReceitaWS(enr.ReceitaWSBaseURL, enr.HTTPTimeout),
	}, lookupCache, cfg.Redis.TTL, log)
	catalogSvc := enrichment.NewCatalogService(log,
		catalog.NewIBGECNAE(enr.IBGEBaseURL, enr.HTTPTimeout),
		catalog.NewBrasilAPINCM(enr.BrasilAPIBaseURL, enr.HTTPTimeout),
	)
	if enr.WarmCatalogs {
		go func() {
			warmCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := catalogSvc.Warm(warmCtx); err != nil {
				log.Warn().Err(err).Msg("precarga de catálogos CNAE/NCM")
			}
		}()
	}

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo, txRunner, infrapdf.NewSupplierSheetGenerator())
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	val := httpRouter.NewValidator()
	drafts := onboarding.NewStore(onboarding.Dependencies{
		Postal:    postalSvc,
		Registry:  registrySvc,
		Geocoder:  geocodeSvc,
		Suppliers: supplierUC,
		Validator: val,
		Debounce:  enr.GeocodeDebounce,
		Log:       log,
	}, enr.DraftTTL)
	defer drafts.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // un blur de CNPJ puede recorrer los tres proveedores
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		Postal:      postalSvc,
		Registry:    registrySvc,
		Geocoder:    geocodeSvc,
		Catalog:     catalogSvc,
		Drafts:      drafts,
		Validator:   val,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
