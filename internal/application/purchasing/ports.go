package purchasing

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner puerto transaccional de la recepción: movimiento, snapshot,
// contador recibido de la línea y costo de catálogo cambian juntos.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		poRepo repository.PurchaseOrderRepository,
		partRepo repository.PartRepository,
	) error) error
}
