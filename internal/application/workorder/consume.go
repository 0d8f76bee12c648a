package workorder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	dominventory "github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// ConsumePartUseCase saca un repuesto del inventario hacia una línea de orden
// de trabajo: movimiento negativo en el ledger + allocation que liga la
// cantidad con la línea, en una sola transacción.
//
// El tenant no viene del caller: se descubre desde el sello shop_id de la
// propia línea. El shop del caller (si viene) solo se usa para verificar que
// no cruza de taller.
type ConsumePartUseCase struct {
	txRunner TxRunner
	woRepo   repository.WorkOrderRepository
	partRepo repository.PartRepository
	resolver LocationResolver
}

// NewConsumePartUseCase construye el caso de uso.
func NewConsumePartUseCase(
	txRunner TxRunner,
	woRepo repository.WorkOrderRepository,
	partRepo repository.PartRepository,
	resolver LocationResolver,
) *ConsumePartUseCase {
	return &ConsumePartUseCase{
		txRunner: txRunner,
		woRepo:   woRepo,
		partRepo: partRepo,
		resolver: resolver,
	}
}

// ConsumeInput entrada del consumo.
type ConsumeInput struct {
	LineID       string
	PartID       string
	Qty          decimal.Decimal  // magnitud, debe ser positiva
	LocationID   string           // opcional; vacío delega en el resolver
	UnitCost     *decimal.Decimal // override opcional; nil usa costo de catálogo
	CallerShopID string           // shop del token; vacío en flujos internos
	UserID       string
}

// Consume ejecuta el consumo y devuelve la allocation creada.
//
// El ledger no bloquea contra disponible: consumir más de lo que hay deja el
// snapshot en negativo y la anomalía se reporta aparte, no aquí.
func (uc *ConsumePartUseCase) Consume(ctx context.Context, in ConsumeInput) (*entity.Allocation, error) {
	if !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.woRepo.GetLineAnyShop(ctx, in.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if in.CallerShopID != "" && line.ShopID != in.CallerShopID {
		return nil, domain.ErrForbidden
	}
	// De aquí en adelante todo corre bajo el taller de la línea.
	ctx = tenant.WithShop(ctx, line.ShopID)

	if line.Voided() {
		return nil, domain.ErrConflict
	}
	order, err := uc.woRepo.GetOrderByID(ctx, line.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Invoiced() || line.Invoiced() {
		return nil, domain.ErrConflict
	}

	part, err := uc.partRepo.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}

	locationID, err := uc.resolver.Resolve(ctx, in.PartID, in.LocationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	move := &entity.StockMove{
		PartID:     in.PartID,
		LocationID: locationID,
		Qty:        in.Qty.Neg(),
		Reason:     entity.ReasonConsume,
		RefKind:    entity.RefKindWorkOrder,
		RefID:      order.ID,
		CreatedBy:  in.UserID,
		CreatedAt:  now,
	}
	alloc := &entity.Allocation{
		WorkOrderID:     order.ID,
		WorkOrderLineID: line.ID,
		PartID:          in.PartID,
		LocationID:      locationID,
		Qty:             in.Qty,
		UnitCost:        dominventory.EffectiveUnitCost(in.UnitCost, part.UnitCost),
		CreatedBy:       in.UserID,
		CreatedAt:       now,
	}

	err = uc.txRunner.RunAllocation(ctx, func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		allocRepo repository.AllocationRepository,
		_ repository.WorkOrderRepository,
	) error {
		if err := inventory.AppendInTx(ctx, movRepo, stockRepo, move); err != nil {
			return err
		}
		alloc.StockMoveID = move.ID
		return allocRepo.Create(ctx, alloc)
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}
