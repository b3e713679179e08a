package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/eproc-api/internal/application/analytics"
	"github.com/jhoicas/eproc-api/internal/application/auth"
	"github.com/jhoicas/eproc-api/internal/application/onboarding"
	"github.com/jhoicas/eproc-api/internal/application/usecase"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Postal      onboarding.PostalLookup
	Registry    onboarding.RegistryLookup
	Geocoder    onboarding.Locator
	Catalog     CatalogSearcher
	Drafts      *onboarding.Store
	Validator   *Validator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	val := deps.Validator
	if val == nil {
		val = NewValidator()
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, val)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/auth/me", userHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, val)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id/sheet.pdf", supplierHandler.Sheet)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, val)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	lookup := protected.Group("/lookup")
	lookupHandler := NewLookupHandler(deps.Postal, deps.Registry, deps.Geocoder, val)
	lookup.Get("/cep/:cep", lookupHandler.CEP)
	lookup.Get("/cnpj/:cnpj", lookupHandler.CNPJ)
	lookup.Post("/geocode", lookupHandler.Geocode)

	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.Catalog)
	catalog.Get("/cnae", catalogHandler.CNAE)
	catalog.Get("/ncm", catalogHandler.NCM)

	drafts := protected.Group("/supplier-drafts")
	draftHandler := NewDraftHandler(deps.Drafts, val)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Patch("/:id/identity", draftHandler.PatchIdentity)
	drafts.Patch("/:id/address", draftHandler.PatchAddress)
	drafts.Post("/:id/cep-blur", draftHandler.BlurCEP)
	drafts.Post("/:id/document-blur", draftHandler.BlurDocument)
	drafts.Post("/:id/cnae", draftHandler.SelectCNAE)
	drafts.Post("/:id/submit", draftHandler.Submit)
}
