package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartStockRepository define el puerto para el snapshot de stock por
// repuesto+ubicación. El snapshot solo lo escribe el ledger (ApplyDelta
// dentro de la misma transacción del movimiento); los callers solo leen.
type PartStockRepository interface {
	Get(ctx context.Context, partID, locationID string) (*entity.PartStock, error)
	// ApplyDelta suma delta a on_hand de forma atómica, creando la fila si
	// no existe. Debe expresarse como incremento en la BD
	// (on_hand = on_hand + delta), nunca como read-modify-write en la
	// aplicación: dos movimientos concurrentes sobre el mismo par
	// serializan en la fila del snapshot.
	ApplyDelta(ctx context.Context, partID, locationID string, delta decimal.Decimal) error
	ListByPart(ctx context.Context, partID string) ([]*entity.PartStock, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.PartStock, error)
	// ListNegative devuelve los pares con on_hand negativo (anomalía
	// detectable del resolver heurístico, no un error fatal).
	ListNegative(ctx context.Context, limit int) ([]*entity.PartStock, error)
}
