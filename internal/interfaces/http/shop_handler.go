package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ShopHandler maneja el taller propio del token (protegido).
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// GetMine godoc
// @Summary      Obtener el taller del token
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/me [get]
func (h *ShopHandler) GetMine(c *fiber.Ctx) error {
	shop, err := h.uc.Get(c.UserContext(), GetShopID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toShopResponse(shop))
}

// UpdateMine godoc
// @Summary      Editar el taller del token (solo admin)
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateShopRequest  true  "name, phone, email"
// @Success      200   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shops/me [put]
func (h *ShopHandler) UpdateMine(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shop, err := h.uc.Update(c.UserContext(), GetShopID(c), in.Name, in.Phone, in.Email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toShopResponse(shop))
}

func toShopResponse(s *entity.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		ID:     s.ID,
		Name:   s.Name,
		Phone:  s.Phone,
		Email:  s.Email,
		Status: s.Status,
	}
}
