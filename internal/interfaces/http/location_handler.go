package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// LocationHandler maneja las ubicaciones de stock (protegido).
type LocationHandler struct {
	uc      *usecase.LocationUseCase
	queries *appinventory.StockQueryUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase, queries *appinventory.StockQueryUseCase) *LocationHandler {
	return &LocationHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Crear ubicación de stock
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "code (único por taller), name"
// @Success      201   {object}  dto.LocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	location, err := h.uc.Create(c.UserContext(), in.Code, in.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationResponse(location))
}

// List godoc
// @Summary      Listar ubicaciones del taller
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	locations, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Saldos de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PartStockResponse
// @Router       /api/locations/{id}/stock [get]
func (h *LocationHandler) GetStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	stocks, err := h.queries.StockByLocation(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPartStockResponses(stocks))
}

// GetMoves godoc
// @Summary      Historial de movimientos de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        from    query  string  false  "desde (RFC3339)"
// @Param        to      query  string  false  "hasta (RFC3339)"
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockMoveResponse
// @Router       /api/locations/{id}/moves [get]
func (h *LocationHandler) GetMoves(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	moves, err := h.queries.MovesByLocation(c.UserContext(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockMoveResponses(moves))
}

func toLocationResponse(l *entity.StockLocation) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Code: l.Code, Name: l.Name}
}
