package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// StockMoveRepository define el puerto de persistencia para el libro mayor
// de movimientos. Solo append y lecturas: los movimientos jamás se
// actualizan ni se borran.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	GetByID(ctx context.Context, id string) (*entity.StockMove, error)
	ListByPart(ctx context.Context, partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error)
	ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error)
	// SumByPartAndLocation devuelve la suma firmada de deltas para un par
	// (repuesto, ubicación); contra esto se verifica el snapshot.
	SumByPartAndLocation(ctx context.Context, partID, locationID string) (decimal.Decimal, error)
	// FindOrphanConsumes devuelve movimientos consume con referencia
	// work_order que no tienen allocation viva (seam de reconciliación).
	FindOrphanConsumes(ctx context.Context, limit int) ([]*entity.StockMove, error)
}
