package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/onboarding"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// DraftHandler borradores de alta de proveedor con enriquecimiento en el servidor.
// Cada borrador pertenece al usuario del token que lo creó.
type DraftHandler struct {
	store *onboarding.Store
	val   *Validator
}

// NewDraftHandler construye el handler.
func NewDraftHandler(store *onboarding.Store, val *Validator) *DraftHandler {
	return &DraftHandler{store: store, val: val}
}

func (h *DraftHandler) draft(c *fiber.Ctx) (*onboarding.Draft, error) {
	return h.store.Get(GetUserID(c), c.Params("id"))
}

// Create godoc
// @Summary      Abrir borrador de proveedor
// @Tags         supplier-drafts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  onboarding.Snapshot
// @Router       /api/supplier-drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	d := h.store.Create(GetUserID(c))
	return c.Status(fiber.StatusCreated).JSON(d.Snapshot())
}

// Get godoc
// @Summary      Estado del borrador
// @Tags         supplier-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  onboarding.Snapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d.Snapshot())
}

// Delete godoc
// @Summary      Descartar borrador
// @Tags         supplier-drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(GetUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PatchIdentity godoc
// @Summary      Editar identificación y contacto
// @Tags         supplier-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  onboarding.IdentityPatch  true  "Campos a cambiar"
// @Success      200   {object}  onboarding.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/identity [patch]
func (h *DraftHandler) PatchIdentity(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	var in onboarding.IdentityPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if fields := h.val.Validate(in); fields != nil {
		return validationFailed(c, fields)
	}
	return c.JSON(d.SetIdentity(in))
}

// PatchAddress godoc
// @Summary      Editar dirección
// @Description  Un cambio en calle, número, barrio, ciudad o UF programa la geocodificación (debounce).
// @Tags         supplier-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  onboarding.AddressPatch  true  "Campos a cambiar"
// @Success      200   {object}  onboarding.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/address [patch]
func (h *DraftHandler) PatchAddress(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	var in onboarding.AddressPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if fields := h.val.Validate(in); fields != nil {
		return validationFailed(c, fields)
	}
	return c.JSON(d.SetAddress(in))
}

// BlurCEP godoc
// @Summary      Completar dirección por CEP
// @Tags         supplier-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  onboarding.Snapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/cep-blur [post]
func (h *DraftHandler) BlurCEP(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d.BlurPostalCode(c.UserContext()))
}

// BlurDocument godoc
// @Summary      Completar datos por CNPJ
// @Tags         supplier-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  onboarding.Snapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/document-blur [post]
func (h *DraftHandler) BlurDocument(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d.BlurDocument(c.UserContext()))
}

// SelectCNAE godoc
// @Summary      Elegir actividad principal
// @Tags         supplier-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.SelectCNAERequest  true  "Entrada del catálogo"
// @Success      200   {object}  onboarding.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/cnae [post]
func (h *DraftHandler) SelectCNAE(c *fiber.Ctx) error {
	d, err := h.draft(c)
	if err != nil {
		return fail(c, err)
	}
	var in dto.SelectCNAERequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if fields := h.val.Validate(in); fields != nil {
		return validationFailed(c, fields)
	}
	return c.JSON(d.SelectCNAE(entity.ClassificationEntry{Code: in.Code, Description: in.Description}))
}

// Submit godoc
// @Summary      Registrar el proveedor del borrador
// @Tags         supplier-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.store.Submit(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
