package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartHandler maneja el catálogo de repuestos (protegido).
type PartHandler struct {
	uc      *usecase.PartUseCase
	queries *appinventory.StockQueryUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *usecase.PartUseCase, queries *appinventory.StockQueryUseCase) *PartHandler {
	return &PartHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartRequest  true  "sku, name, unit_cost, price"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.PartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.uc.Create(c.UserContext(), usecase.PartInput{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		UnitCost:    in.UnitCost,
		Price:       in.Price,
		UnitMeasure: in.UnitMeasure,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPartResponse(part))
}

// GetByID godoc
// @Summary      Obtener repuesto
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	part, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPartResponse(part))
}

// Update godoc
// @Summary      Editar repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del repuesto"
// @Param        body  body  dto.PartRequest  true  "datos editables"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.PartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.uc.Update(c.UserContext(), c.Params("id"), usecase.PartInput{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		UnitCost:    in.UnitCost,
		Price:       in.Price,
		UnitMeasure: in.UnitMeasure,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPartResponse(part))
}

// List godoc
// @Summary      Listar/buscar repuestos
// @Description  Con q busca por nombre o SKU, insensible a acentos y mayúsculas.
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "término de búsqueda"
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PartResponse
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	parts, err := h.uc.List(c.UserContext(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, toPartResponse(p))
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Saldos de un repuesto por ubicación
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del repuesto"
// @Success      200  {array}  dto.PartStockResponse
// @Router       /api/parts/{id}/stock [get]
func (h *PartHandler) GetStock(c *fiber.Ctx) error {
	stocks, err := h.queries.StockByPart(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPartStockResponses(stocks))
}

// GetMoves godoc
// @Summary      Historial de movimientos de un repuesto
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del repuesto"
// @Param        from    query  string  false  "desde (RFC3339)"
// @Param        to      query  string  false  "hasta (RFC3339)"
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockMoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/moves [get]
func (h *PartHandler) GetMoves(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	moves, err := h.queries.MovesByPart(c.UserContext(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockMoveResponses(moves))
}

func toPartResponse(p *entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitCost:    p.UnitCost,
		Price:       p.Price,
		UnitMeasure: p.UnitMeasure,
	}
}
