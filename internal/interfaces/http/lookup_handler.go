package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/application/onboarding"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

// HeaderEnrichmentUnavailable se envía en las respuestas 204 cuando ningún proveedor pudo responder.
const HeaderEnrichmentUnavailable = "X-Enrichment-Unavailable"

// LookupHandler consultas puntuales de CEP, CNPJ y geocodificación.
// Un resultado sin cambios responde 204; nunca es un error para el cliente.
type LookupHandler struct {
	postal   onboarding.PostalLookup
	registry onboarding.RegistryLookup
	geocoder onboarding.Locator
	val      *Validator
}

// NewLookupHandler construye el handler.
func NewLookupHandler(postal onboarding.PostalLookup, registry onboarding.RegistryLookup, geocoder onboarding.Locator, val *Validator) *LookupHandler {
	return &LookupHandler{postal: postal, registry: registry, geocoder: geocoder, val: val}
}

// CEP godoc
// @Summary      Consultar CEP (ViaCEP)
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        cep  path  string  true  "CEP con o sin máscara"
// @Success      200  {object}  dto.LookupResponse
// @Success      204
// @Router       /api/lookup/cep/{cep} [get]
func (h *LookupHandler) CEP(c *fiber.Ctx) error {
	addr, out := h.postal.Lookup(c.UserContext(), c.Params("cep"))
	if out.Status != enrichment.StatusApplied || addr == nil {
		return noChange(c, out)
	}
	return c.JSON(dto.LookupResponse{Result: addr, Source: out.Source})
}

// CNPJ godoc
// @Summary      Consultar CNPJ (publica.cnpj.ws, BrasilAPI, ReceitaWS)
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ con o sin máscara"
// @Success      200   {object}  dto.LookupResponse
// @Success      204
// @Router       /api/lookup/cnpj/{cnpj} [get]
func (h *LookupHandler) CNPJ(c *fiber.Ctx) error {
	rec, out := h.registry.Lookup(c.UserContext(), c.Params("cnpj"))
	if out.Status != enrichment.StatusApplied || rec == nil {
		return noChange(c, out)
	}
	return c.JSON(dto.LookupResponse{Result: rec, Source: out.Source})
}

// Geocode godoc
// @Summary      Geocodificar una dirección (Nominatim)
// @Tags         lookup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddressDTO  true  "Dirección"
// @Success      200   {object}  dto.LookupResponse
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lookup/geocode [post]
func (h *LookupHandler) Geocode(c *fiber.Ctx) error {
	var in dto.AddressDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if fields := h.val.Validate(in); fields != nil {
		return validationFailed(c, fields)
	}
	coords, out := h.geocoder.Locate(c.UserContext(), entity.Address{
		PostalCode:   in.PostalCode,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
	})
	if out.Status != enrichment.StatusApplied || coords == nil {
		return noChange(c, out)
	}
	return c.JSON(dto.LookupResponse{Result: coords, Source: out.Source, Strategy: out.Strategy})
}

func noChange(c *fiber.Ctx, out enrichment.Outcome) error {
	if out.Unavailable {
		c.Set(HeaderEnrichmentUnavailable, strconv.FormatBool(true))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
