package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// InventoryHandler maneja ajustes manuales y lecturas del ledger (protegido).
type InventoryHandler struct {
	applyMove *appinventory.ApplyStockMoveUseCase
	queries   *appinventory.StockQueryUseCase
	reconcile *appinventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	applyMove *appinventory.ApplyStockMoveUseCase,
	queries *appinventory.StockQueryUseCase,
	reconcile *appinventory.ReconcileUseCase,
) *InventoryHandler {
	return &InventoryHandler{applyMove: applyMove, queries: queries, reconcile: reconcile}
}

// Adjust godoc
// @Summary      Registrar ajuste manual de stock
// @Description  Movimiento firmado con razón adjust o scrap (conteo, corrección, baja por daño).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "part_id, location_id, qty (firmado), reason"
// @Success      201   {object}  dto.StockMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Solo razones manuales por esta ruta: consume/return_in/receive nacen de
	// sus propios flujos con referencia a la entidad causante.
	if in.Reason != entity.ReasonAdjust && in.Reason != entity.ReasonScrap {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "razón debe ser adjust o scrap"})
	}
	move, err := h.applyMove.Apply(c.UserContext(), appinventory.MoveInput{
		PartID:     in.PartID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		Reason:     in.Reason,
		RefKind:    entity.RefKindManual,
		RefID:      in.Note,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockMoveResponse(move))
}

// NegativeStock godoc
// @Summary      Saldos negativos del taller
// @Description  Pares (repuesto, ubicación) con saldo bajo cero: anomalías del consumo sin bloqueo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máx resultados"
// @Success      200  {array}  dto.PartStockResponse
// @Router       /api/inventory/negative [get]
func (h *InventoryHandler) NegativeStock(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	stocks, err := h.queries.NegativeStock(c.UserContext(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPartStockResponses(stocks))
}

// OrphanConsumes godoc
// @Summary      Consumos huérfanos (reconciliación)
// @Description  Movimientos consume referidos a órdenes de trabajo sin allocation viva.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máx resultados"
// @Success      200  {array}  dto.StockMoveResponse
// @Router       /api/inventory/orphan-consumes [get]
func (h *InventoryHandler) OrphanConsumes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	moves, err := h.reconcile.OrphanConsumes(c.UserContext(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockMoveResponses(moves))
}

// VerifyBalance godoc
// @Summary      Verificar snapshot contra ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_id      query  string  true  "ID del repuesto"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.BalanceCheckResponse
// @Router       /api/inventory/balance [get]
func (h *InventoryHandler) VerifyBalance(c *fiber.Ctx) error {
	partID := c.Query("part_id")
	locationID := c.Query("location_id")
	if partID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "part_id y location_id son requeridos"})
	}
	check, err := h.queries.VerifyBalance(c.UserContext(), partID, locationID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.BalanceCheckResponse{
		PartID:     partID,
		LocationID: locationID,
		OnHand:     check.Snapshot.OnHand,
		LedgerSum:  check.LedgerSum,
		Balanced:   check.Balanced,
	})
}

// parseDateRange lee from/to en RFC3339 de la query string.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

func toStockMoveResponse(m *entity.StockMove) dto.StockMoveResponse {
	return dto.StockMoveResponse{
		ID:         m.ID,
		PartID:     m.PartID,
		LocationID: m.LocationID,
		Qty:        m.Qty,
		Reason:     m.Reason,
		RefKind:    m.RefKind,
		RefID:      m.RefID,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

func toStockMoveResponses(moves []*entity.StockMove) []dto.StockMoveResponse {
	out := make([]dto.StockMoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, toStockMoveResponse(m))
	}
	return out
}

func toPartStockResponses(stocks []*entity.PartStock) []dto.PartStockResponse {
	out := make([]dto.PartStockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.PartStockResponse{
			PartID:     s.PartID,
			LocationID: s.LocationID,
			OnHand:     s.OnHand,
			Reserved:   s.Reserved,
			Available:  s.Available(),
		})
	}
	return out
}
