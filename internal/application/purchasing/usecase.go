package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PurchaseOrderUseCase CRUD de órdenes de compra. El inventario solo entra
// por ReceiveUseCase.
type PurchaseOrderUseCase struct {
	poRepo   repository.PurchaseOrderRepository
	partRepo repository.PartRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(poRepo repository.PurchaseOrderRepository, partRepo repository.PartRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{poRepo: poRepo, partRepo: partRepo}
}

// CreateOrderLineInput línea del pedido al crearlo.
type CreateOrderLineInput struct {
	PartID     string
	OrderedQty decimal.Decimal
	UnitCost   decimal.Decimal
}

// CreateOrderInput datos para abrir una orden de compra con sus líneas.
type CreateOrderInput struct {
	Number     string
	VendorName string
	Lines      []CreateOrderLineInput
}

// CreateOrder abre una orden de compra en estado open con sus líneas. Cada
// repuesto referido debe existir en el taller.
func (uc *PurchaseOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	if in.Number == "" || len(in.Lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if !l.OrderedQty.IsPositive() || l.UnitCost.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		part, err := uc.partRepo.GetByID(ctx, l.PartID)
		if err != nil {
			return nil, nil, err
		}
		if part == nil {
			return nil, nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		Number:     in.Number,
		VendorName: in.VendorName,
		Status:     entity.PurchaseOrderStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.poRepo.CreateOrder(ctx, order); err != nil {
		return nil, nil, err
	}
	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := &entity.PurchaseOrderLine{
			PurchaseOrderID: order.ID,
			PartID:          l.PartID,
			OrderedQty:      l.OrderedQty,
			ReceivedQty:     decimal.Zero,
			UnitCost:        l.UnitCost,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.poRepo.CreateLine(ctx, line); err != nil {
			return nil, nil, err
		}
		lines = append(lines, line)
	}
	return order, lines, nil
}

// GetOrder devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetOrder(ctx context.Context, id string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	order, err := uc.poRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.poRepo.ListLinesByOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// ListOrders lista las órdenes de compra del taller con paginación.
func (uc *PurchaseOrderUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.ListOrders(ctx, limit, offset)
}
