package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PurchasingHandler maneja órdenes de compra y recepciones (protegido).
type PurchasingHandler struct {
	uc      *purchasing.PurchaseOrderUseCase
	receive *purchasing.ReceiveUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.PurchaseOrderUseCase, receive *purchasing.ReceiveUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc, receive: receive}
}

// Create godoc
// @Summary      Abrir orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "number, vendor_name, lines"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchasingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]purchasing.CreateOrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, purchasing.CreateOrderLineInput{
			PartID:     l.PartID,
			OrderedQty: l.OrderedQty,
			UnitCost:   l.UnitCost,
		})
	}
	order, created, err := h.uc.CreateOrder(c.UserContext(), purchasing.CreateOrderInput{
		Number:     in.Number,
		VendorName: in.VendorName,
		Lines:      lines,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(order, created))
}

// GetByID godoc
// @Summary      Obtener orden de compra con avance de recepción
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchasingHandler) GetByID(c *fiber.Ctx) error {
	order, lines, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(order, lines))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchasingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.ListOrders(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toPurchaseOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// ReceiveLine godoc
// @Summary      Recibir contra una línea de compra
// @Description  Movimiento receive por las unidades físicas; el contador de la línea
//
//	avanza solo hasta lo pedido (clamp) y el costo de catálogo se
//	recalcula a promedio ponderado.
//
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la línea"
// @Param        body  body  dto.ReceiveRequest  true  "qty, location_id"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/lines/{id}/receive [post]
func (h *PurchasingHandler) ReceiveLine(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.receive.ReceiveLine(c.UserContext(), purchasing.ReceiveLineInput{
		LineID:     c.Params("id"),
		Qty:        in.Qty,
		LocationID: in.LocationID,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toReceiptResponse(result))
}

// ReceiveOrder godoc
// @Summary      Recibir contra la orden (reparto FIFO)
// @Description  Reparte la cantidad entre las líneas abiertas en orden de creación.
//
//	Sin líneas abiertas devuelve 409.
//
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.ReceiveRequest  true  "qty, location_id"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchasingHandler) ReceiveOrder(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.receive.ReceiveOrder(c.UserContext(), purchasing.ReceiveOrderInput{
		OrderID:    c.Params("id"),
		Qty:        in.Qty,
		LocationID: in.LocationID,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toReceiptResponse(result))
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		VendorName: o.VendorName,
		Status:     o.Status,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			PartID:      l.PartID,
			OrderedQty:  l.OrderedQty,
			ReceivedQty: l.ReceivedQty,
			Remaining:   l.Remaining(),
			UnitCost:    l.UnitCost,
		})
	}
	return resp
}

func toReceiptResponse(r *purchasing.ReceiptResult) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		Moves:       toStockMoveResponses(r.Moves),
		AppliedQty:  r.AppliedQty,
		OrderStatus: r.OrderStatus,
	}
}
