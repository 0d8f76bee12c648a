package inventory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repos del ledger atados a esa tx. Garantiza que el append del movimiento y
// el incremento del snapshot son una sola unidad atómica: o el caller ve las
// dos escrituras, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
	) error) error
}
