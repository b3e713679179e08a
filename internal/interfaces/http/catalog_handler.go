package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// CatalogSearcher busca en los catálogos CNAE/NCM.
type CatalogSearcher interface {
	Search(ctx context.Context, kind entity.CatalogKind, query string, limit int) ([]entity.ClassificationEntry, error)
}

// CatalogHandler búsqueda en los catálogos de clasificación.
type CatalogHandler struct {
	catalog CatalogSearcher
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(catalog CatalogSearcher) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CNAE godoc
// @Summary      Buscar actividades CNAE
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Texto o código"
// @Param        limit  query  int     false  "Máximo de resultados (<= 50)"  default(50)
// @Success      200    {object}  dto.CatalogSearchResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/catalog/cnae [get]
func (h *CatalogHandler) CNAE(c *fiber.Ctx) error {
	return h.search(c, entity.CatalogCNAE)
}

// NCM godoc
// @Summary      Buscar códigos NCM
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Texto o código"
// @Param        limit  query  int     false  "Máximo de resultados (<= 50)"  default(50)
// @Success      200    {object}  dto.CatalogSearchResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/catalog/ncm [get]
func (h *CatalogHandler) NCM(c *fiber.Ctx) error {
	return h.search(c, entity.CatalogNCM)
}

func (h *CatalogHandler) search(c *fiber.Ctx, kind entity.CatalogKind) error {
	q := c.Query("q")
	entries, err := h.catalog.Search(c.UserContext(), kind, q, c.QueryInt("limit", 0))
	if err != nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catálogo no disponible, intente más tarde")
	}
	items := make([]dto.CatalogEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.CatalogEntryDTO{Code: e.Code, Description: e.Description})
	}
	return c.JSON(dto.CatalogSearchResponse{Kind: string(kind), Query: q, Items: items})
}
