package workorder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// WorkOrderUseCase CRUD de órdenes de trabajo y sus líneas. El inventario
// solo entra por Consume/DeleteOrVoid; aquí las líneas nacen sin efecto de
// stock.
type WorkOrderUseCase struct {
	woRepo    repository.WorkOrderRepository
	allocRepo repository.AllocationRepository
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(woRepo repository.WorkOrderRepository, allocRepo repository.AllocationRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{woRepo: woRepo, allocRepo: allocRepo}
}

// CreateOrderInput datos para abrir una orden de trabajo.
type CreateOrderInput struct {
	Number       string
	CustomerName string
	VehiclePlate string
}

// CreateOrder abre una orden de trabajo en estado open.
func (uc *WorkOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.WorkOrder, error) {
	if in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.WorkOrder{
		Number:       in.Number,
		CustomerName: in.CustomerName,
		VehiclePlate: in.VehiclePlate,
		Status:       entity.WorkOrderStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.woRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve la orden con sus líneas.
func (uc *WorkOrderUseCase) GetOrder(ctx context.Context, id string) (*entity.WorkOrder, []*entity.WorkOrderLine, error) {
	order, err := uc.woRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.woRepo.ListLinesByOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// ListOrders lista las órdenes del taller con paginación.
func (uc *WorkOrderUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error) {
	return uc.woRepo.ListOrders(ctx, limit, offset)
}

// UpdateOrderStatus transiciona el estado de la orden. Una orden facturada no
// vuelve atrás.
func (uc *WorkOrderUseCase) UpdateOrderStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.WorkOrderStatusOpen, entity.WorkOrderStatusInProgress,
		entity.WorkOrderStatusCompleted, entity.WorkOrderStatusInvoiced:
	default:
		return domain.ErrInvalidInput
	}
	order, err := uc.woRepo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Invoiced() {
		return domain.ErrConflict
	}
	return uc.woRepo.UpdateOrderStatus(ctx, id, status)
}

// AddLineInput datos para agregar una línea a la orden.
type AddLineInput struct {
	WorkOrderID string
	PartID      string // vacío para mano de obra
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
}

// AddLine agrega una línea a una orden no facturada. No mueve inventario.
func (uc *WorkOrderUseCase) AddLine(ctx context.Context, in AddLineInput) (*entity.WorkOrderLine, error) {
	if in.Description == "" || !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.woRepo.GetOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Invoiced() {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	line := &entity.WorkOrderLine{
		WorkOrderID: in.WorkOrderID,
		PartID:      in.PartID,
		Description: in.Description,
		Qty:         in.Qty,
		UnitPrice:   in.UnitPrice,
		Status:      entity.LineStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.woRepo.CreateLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// ListAllocations lista las asignaciones de repuestos de una orden.
func (uc *WorkOrderUseCase) ListAllocations(ctx context.Context, workOrderID string) ([]*entity.Allocation, error) {
	order, err := uc.woRepo.GetOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.allocRepo.ListByOrder(ctx, workOrderID)
}
