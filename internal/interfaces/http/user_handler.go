package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eproc-api/internal/application/usecase"
)

// UserHandler expone el perfil del usuario autenticado.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	if user == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(user)
}
