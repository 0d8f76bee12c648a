package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// StockQueryUseCase lecturas del ledger y del snapshot (sin escritura).
type StockQueryUseCase struct {
	movRepo   repository.StockMoveRepository
	stockRepo repository.PartStockRepository
	partRepo  repository.PartRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	partRepo repository.PartRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{movRepo: movRepo, stockRepo: stockRepo, partRepo: partRepo}
}

// MovesByPart historial de movimientos de un repuesto, con rango de fechas opcional.
func (uc *StockQueryUseCase) MovesByPart(ctx context.Context, partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByPart(ctx, partID, from, to, limit, offset)
}

// MovesByLocation historial de movimientos de una ubicación.
func (uc *StockQueryUseCase) MovesByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	return uc.movRepo.ListByLocation(ctx, locationID, from, to, limit, offset)
}

// StockByPart snapshot de saldos de un repuesto en todas sus ubicaciones.
func (uc *StockQueryUseCase) StockByPart(ctx context.Context, partID string) ([]*entity.PartStock, error) {
	return uc.stockRepo.ListByPart(ctx, partID)
}

// StockByLocation snapshot de saldos de una ubicación.
func (uc *StockQueryUseCase) StockByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.PartStock, error) {
	return uc.stockRepo.ListByLocation(ctx, locationID, limit, offset)
}

// NegativeStock pares (repuesto, ubicación) con saldo negativo. Reporte de
// anomalías del resolver heurístico, no un error.
func (uc *StockQueryUseCase) NegativeStock(ctx context.Context, limit int) ([]*entity.PartStock, error) {
	return uc.stockRepo.ListNegative(ctx, limit)
}

// BalanceCheck compara el snapshot contra la suma firmada del ledger para un
// par (repuesto, ubicación). En reposo deben coincidir; una divergencia
// indica escritura de snapshot fuera del ledger.
type BalanceCheck struct {
	Snapshot  *entity.PartStock
	LedgerSum string
	Balanced  bool
}

// VerifyBalance ejecuta la comparación snapshot vs. ledger.
func (uc *StockQueryUseCase) VerifyBalance(ctx context.Context, partID, locationID string) (*BalanceCheck, error) {
	snapshot, err := uc.stockRepo.Get(ctx, partID, locationID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.movRepo.SumByPartAndLocation(ctx, partID, locationID)
	if err != nil {
		return nil, err
	}
	return &BalanceCheck{
		Snapshot:  snapshot,
		LedgerSum: sum.String(),
		Balanced:  snapshot.OnHand.Equal(sum),
	}, nil
}
