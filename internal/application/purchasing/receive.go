package purchasing

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

// ReceiveUseCase procesa recepciones de órdenes de compra: movimiento
// receive en el ledger, avance del contador recibido (con clamp contra lo
// pedido), costo promedio ponderado del catálogo y transición de estado de
// la orden, todo en una transacción.
type ReceiveUseCase struct {
	txRunner     TxRunner
	poRepo       repository.PurchaseOrderRepository
	locationRepo repository.LocationRepository
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	locationRepo repository.LocationRepository,
) *ReceiveUseCase {
	return &ReceiveUseCase{txRunner: txRunner, poRepo: poRepo, locationRepo: locationRepo}
}

// ReceiveLineInput recepción contra una línea puntual.
type ReceiveLineInput struct {
	LineID     string
	Qty        decimal.Decimal // unidades físicas que llegaron, positiva
	LocationID string
	UserID     string
}

// ReceiptResult resume lo aplicado en una recepción.
type ReceiptResult struct {
	Moves       []*entity.StockMove
	AppliedQty  decimal.Decimal // lo acreditado a contadores (tras clamp)
	OrderStatus string
}

// ReceiveLine recibe unidades contra una línea. El movimiento registra las
// unidades físicas completas; el contador de la línea solo avanza hasta lo
// pedido (clamp). ReceivedQty jamás supera OrderedQty.
func (uc *ReceiveUseCase) ReceiveLine(ctx context.Context, in ReceiveLineInput) (*ReceiptResult, error) {
	if _, err := tenant.ShopID(ctx); err != nil {
		return nil, err
	}
	if !in.Qty.IsPositive() || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var result ReceiptResult
	err = uc.txRunner.RunReceiving(ctx, func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		poRepo repository.PurchaseOrderRepository,
		partRepo repository.PartRepository,
	) error {
		line, err := poRepo.GetLineByID(ctx, in.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		move, applied, err := receiveAgainstLine(ctx, movRepo, stockRepo, poRepo, partRepo,
			line, in.Qty, in.LocationID, in.UserID)
		if err != nil {
			return err
		}
		result.Moves = append(result.Moves, move)
		result.AppliedQty = applied
		status, err := settleOrderStatus(ctx, poRepo, line.PurchaseOrderID)
		if err != nil {
			return err
		}
		result.OrderStatus = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReceiveOrderInput recepción a nivel orden, repartida FIFO entre líneas abiertas.
type ReceiveOrderInput struct {
	OrderID    string
	Qty        decimal.Decimal
	LocationID string
	UserID     string
}

// ReceiveOrder reparte una cantidad recibida entre las líneas abiertas de la
// orden en orden de creación (FIFO), llenando cada una hasta lo pendiente.
// Si la orden no tiene líneas abiertas devuelve ErrConflict; el sobrante más
// allá de lo pedido no se acredita.
func (uc *ReceiveUseCase) ReceiveOrder(ctx context.Context, in ReceiveOrderInput) (*ReceiptResult, error) {
	if _, err := tenant.ShopID(ctx); err != nil {
		return nil, err
	}
	if !in.Qty.IsPositive() || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var result ReceiptResult
	err = uc.txRunner.RunReceiving(ctx, func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		poRepo repository.PurchaseOrderRepository,
		partRepo repository.PartRepository,
	) error {
		order, err := poRepo.GetOrderByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		open, err := poRepo.ListOpenLinesByOrder(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if len(open) == 0 {
			return domain.ErrConflict
		}

		remaining := in.Qty
		for _, line := range open {
			if !remaining.IsPositive() {
				break
			}
			take := decimal.Min(remaining, line.Remaining())
			if !take.IsPositive() {
				continue
			}
			move, applied, err := receiveAgainstLine(ctx, movRepo, stockRepo, poRepo, partRepo,
				line, take, in.LocationID, in.UserID)
			if err != nil {
				return err
			}
			result.Moves = append(result.Moves, move)
			result.AppliedQty = result.AppliedQty.Add(applied)
			remaining = remaining.Sub(applied)
		}
		status, err := settleOrderStatus(ctx, poRepo, in.OrderID)
		if err != nil {
			return err
		}
		result.OrderStatus = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// receiveAgainstLine aplica una recepción sobre una línea dentro de la tx:
// movimiento +qty, avance del contador con clamp y recálculo de costo
// promedio ponderado del catálogo.
func receiveAgainstLine(
	ctx context.Context,
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	poRepo repository.PurchaseOrderRepository,
	partRepo repository.PartRepository,
	line *entity.PurchaseOrderLine,
	qty decimal.Decimal,
	locationID, userID string,
) (*entity.StockMove, decimal.Decimal, error) {
	applied := decimal.Min(qty, line.Remaining())

	part, err := partRepo.GetByID(ctx, line.PartID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if part == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	// Snapshot previo al movimiento: base del promedio ponderado.
	before, err := stockRepo.Get(ctx, line.PartID, locationID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	move := &entity.StockMove{
		PartID:     line.PartID,
		LocationID: locationID,
		Qty:        qty,
		Reason:     entity.ReasonReceive,
		RefKind:    entity.RefKindPurchaseOrder,
		RefID:      line.PurchaseOrderID,
		CreatedBy:  userID,
		CreatedAt:  time.Now(),
	}
	if err := inventory.AppendInTx(ctx, movRepo, stockRepo, move); err != nil {
		return nil, decimal.Zero, err
	}
	if applied.IsPositive() {
		if err := poRepo.AddReceivedQty(ctx, line.ID, applied); err != nil {
			return nil, decimal.Zero, err
		}
	}
	if line.UnitCost.IsPositive() {
		newCost := dominventory.CostCalculator(before.OnHand, part.UnitCost, qty, line.UnitCost)
		if err := partRepo.UpdateCost(ctx, line.PartID, newCost); err != nil {
			return nil, decimal.Zero, err
		}
	}
	return move, applied, nil
}

// settleOrderStatus recalcula el estado de la orden tras la recepción:
// received si no quedan líneas abiertas, partial si avanzó algo.
func settleOrderStatus(ctx context.Context, poRepo repository.PurchaseOrderRepository, orderID string) (string, error) {
	open, err := poRepo.ListOpenLinesByOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	status := entity.PurchaseOrderStatusReceived
	if len(open) > 0 {
		status = entity.PurchaseOrderStatusPartial
	}
	if err := poRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return "", err
	}
	return status, nil
}
