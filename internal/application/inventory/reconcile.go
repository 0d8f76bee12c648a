package inventory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ReconcileUseCase detecta movimientos consume referidos a órdenes de trabajo
// que quedaron sin allocation viva. Con el consumo transaccional no deberían
// existir; el reporte queda como red de seguridad ante datos migrados o
// escrituras externas.
type ReconcileUseCase struct {
	movRepo repository.StockMoveRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(movRepo repository.StockMoveRepository) *ReconcileUseCase {
	return &ReconcileUseCase{movRepo: movRepo}
}

// OrphanConsumes devuelve los movimientos consume huérfanos del taller activo.
func (uc *ReconcileUseCase) OrphanConsumes(ctx context.Context, limit int) ([]*entity.StockMove, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.movRepo.FindOrphanConsumes(ctx, limit)
}
