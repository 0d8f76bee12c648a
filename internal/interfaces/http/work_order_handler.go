package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// WorkOrderHandler maneja órdenes de trabajo, consumo de repuestos y el
// delete-or-void de líneas (protegido).
type WorkOrderHandler struct {
	uc      *workorder.WorkOrderUseCase
	consume *workorder.ConsumePartUseCase
	void    *workorder.VoidLineUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(
	uc *workorder.WorkOrderUseCase,
	consume *workorder.ConsumePartUseCase,
	void *workorder.VoidLineUseCase,
) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, consume: consume, void: void}
}

// Create godoc
// @Summary      Abrir orden de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "number, customer_name, vehicle_plate"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.UserContext(), workorder.CreateOrderInput{
		Number:       in.Number,
		CustomerName: in.CustomerName,
		VehiclePlate: in.VehiclePlate,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkOrderResponse(order, nil))
}

// GetByID godoc
// @Summary      Obtener orden de trabajo con sus líneas
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	order, lines, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toWorkOrderResponse(order, lines))
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/work-orders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.ListOrders(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toWorkOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la orden
// @Description  Una orden facturada es terminal: no admite más cambios.
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la orden"
// @Param        body  body  dto.UpdateWorkOrderStatusRequest  true  "status destino"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/status [put]
func (h *WorkOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateWorkOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateOrderStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"status": in.Status})
}

// AddLine godoc
// @Summary      Agregar línea a la orden
// @Description  La línea nace sin efecto de inventario; el stock se mueve al consumir.
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden"
// @Param        body  body  dto.AddWorkOrderLineRequest  true  "description, qty, unit_price, part_id opcional"
// @Success      201   {object}  dto.WorkOrderLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/lines [post]
func (h *WorkOrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddWorkOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddLine(c.UserContext(), workorder.AddLineInput{
		WorkOrderID: c.Params("id"),
		PartID:      in.PartID,
		Description: in.Description,
		Qty:         in.Qty,
		UnitPrice:   in.UnitPrice,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkOrderLineResponse(line))
}

// ConsumePart godoc
// @Summary      Consumir repuesto hacia una línea
// @Description  Registra el movimiento negativo y la allocation en una sola transacción.
//
//	Sin location_id decide el resolver (mayor disponible, fallback MAIN).
//	No bloquea contra disponible: el saldo puede quedar negativo.
//
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la línea"
// @Param        body  body  dto.ConsumePartRequest  true  "part_id, qty, location_id y unit_cost opcionales"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/lines/{id}/consume [post]
func (h *WorkOrderHandler) ConsumePart(c *fiber.Ctx) error {
	var in dto.ConsumePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	alloc, err := h.consume.Consume(c.UserContext(), workorder.ConsumeInput{
		LineID:       c.Params("id"),
		PartID:       in.PartID,
		Qty:          in.Qty,
		LocationID:   in.LocationID,
		UnitCost:     in.UnitCost,
		CallerShopID: GetShopID(c),
		UserID:       GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAllocationResponse(alloc))
}

// DeleteLine godoc
// @Summary      Quitar línea (delete-or-void)
// @Description  Líneas sin repuestos asignados y en estado open se borran; el resto
//
//	queda anulado con razón obligatoria (mandar reason fuerza void aunque la
//	línea califique para borrado). Con allocations se exige disposición:
//	return_to_stock apunta contramovimientos, keep_consumed/scrap solo liberan.
//	Líneas u órdenes facturadas devuelven 409.
//
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true   "ID de la línea"
// @Param        body  body  dto.VoidLineRequest  false  "reason, disposition, note"
// @Success      200   {object}  dto.VoidLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/work-orders/lines/{id} [delete]
func (h *WorkOrderHandler) DeleteLine(c *fiber.Ctx) error {
	var in dto.VoidLineRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	outcome, err := h.void.DeleteOrVoid(c.UserContext(), workorder.VoidInput{
		LineID:       c.Params("id"),
		Reason:       in.Reason,
		Disposition:  in.Disposition,
		Note:         in.Note,
		CallerShopID: GetShopID(c),
		UserID:       GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.VoidLineResponse{
		Result:      outcome.Result,
		Disposition: outcome.Disposition,
		Returned:    outcome.Returned,
		Released:    outcome.Released,
	})
}

// ListAllocations godoc
// @Summary      Asignaciones de repuestos de una orden
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/allocations [get]
func (h *WorkOrderHandler) ListAllocations(c *fiber.Ctx) error {
	allocs, err := h.uc.ListAllocations(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, toAllocationResponse(a))
	}
	return c.JSON(out)
}

func toWorkOrderResponse(o *entity.WorkOrder, lines []*entity.WorkOrderLine) dto.WorkOrderResponse {
	resp := dto.WorkOrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		CustomerName: o.CustomerName,
		VehiclePlate: o.VehiclePlate,
		Status:       o.Status,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, toWorkOrderLineResponse(l))
	}
	return resp
}

func toWorkOrderLineResponse(l *entity.WorkOrderLine) dto.WorkOrderLineResponse {
	return dto.WorkOrderLineResponse{
		ID:          l.ID,
		WorkOrderID: l.WorkOrderID,
		PartID:      l.PartID,
		Description: l.Description,
		Qty:         l.Qty,
		UnitPrice:   l.UnitPrice,
		Status:      l.Status,
		VoidedAt:    l.VoidedAt,
		VoidReason:  l.VoidReason,
		VoidNote:    l.VoidNote,
	}
}

func toAllocationResponse(a *entity.Allocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:              a.ID,
		WorkOrderID:     a.WorkOrderID,
		WorkOrderLineID: a.WorkOrderLineID,
		PartID:          a.PartID,
		LocationID:      a.LocationID,
		Qty:             a.Qty,
		UnitCost:        a.UnitCost,
		StockMoveID:     a.StockMoveID,
	}
}
