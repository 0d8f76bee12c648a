package workorder

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner puerto transaccional del consumo y el void: movimiento, snapshot,
// allocation y línea deben cambiar juntos o no cambiar.
type TxRunner interface {
	RunAllocation(ctx context.Context, fn func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		allocRepo repository.AllocationRepository,
		lineRepo repository.WorkOrderRepository,
	) error) error
}

// LocationResolver resuelve la ubicación de salida de un consumo cuando el
// caller no la indica (best-bin con fallback a la ubicación por defecto).
type LocationResolver interface {
	Resolve(ctx context.Context, partID, explicitID string) (string, error)
}
