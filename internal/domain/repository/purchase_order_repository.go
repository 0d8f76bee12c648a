package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas. La política de cumplimiento (cuándo la orden pasa a
// received) la decide el flujo de recepción, no el ledger.
type PurchaseOrderRepository interface {
	CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error
	GetOrderByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error

	CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	GetLineByID(ctx context.Context, id string) (*entity.PurchaseOrderLine, error)
	ListLinesByOrder(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error)
	// ListOpenLinesByOrder devuelve las líneas con cantidad pendiente,
	// en orden de creación (FIFO para recepciones que abarcan varias líneas).
	ListOpenLinesByOrder(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error)
	// AddReceivedQty incrementa received_qty de la línea (ya clampeado por
	// el caso de uso, el repo solo suma).
	AddReceivedQty(ctx context.Context, lineID string, qty decimal.Decimal) error
}
