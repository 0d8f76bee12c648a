package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// ApplyStockMoveUseCase es la única puerta de escritura del ledger: valida
// la entrada, agrega el movimiento inmutable y actualiza el snapshot en la
// misma transacción. Los callers (consumo, void, recepción, ajustes) nunca
// escriben el snapshot directamente.
type ApplyStockMoveUseCase struct {
	txRunner     TxRunner
	partRepo     repository.PartRepository
	locationRepo repository.LocationRepository
}

// NewApplyStockMoveUseCase construye el caso de uso.
func NewApplyStockMoveUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	locationRepo repository.LocationRepository,
) *ApplyStockMoveUseCase {
	return &ApplyStockMoveUseCase{
		txRunner:     txRunner,
		partRepo:     partRepo,
		locationRepo: locationRepo,
	}
}

// MoveInput entrada para registrar un movimiento del ledger.
type MoveInput struct {
	PartID     string
	LocationID string
	Qty        decimal.Decimal // delta firmado, nunca cero
	Reason     string
	RefKind    string
	RefID      string
	UserID     string
}

// Apply valida y registra un movimiento. El contexto debe traer el taller
// activo; part y location deben pertenecerle. No hay chequeo contra
// disponible: un consumo puede dejar el snapshot en negativo (anomalía
// detectable vía PartStockRepository.ListNegative, no estado bloqueado).
func (uc *ApplyStockMoveUseCase) Apply(ctx context.Context, in MoveInput) (*entity.StockMove, error) {
	if _, err := tenant.ShopID(ctx); err != nil {
		return nil, err
	}
	if in.Qty.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidReason(in.Reason) {
		return nil, domain.ErrInvalidReason
	}
	part, err := uc.partRepo.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	move := &entity.StockMove{
		PartID:     in.PartID,
		LocationID: in.LocationID,
		Qty:        in.Qty,
		Reason:     in.Reason,
		RefKind:    in.RefKind,
		RefID:      in.RefID,
		CreatedBy:  in.UserID,
		CreatedAt:  time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
	) error {
		if err := movRepo.Create(ctx, move); err != nil {
			return err
		}
		return stockRepo.ApplyDelta(ctx, move.PartID, move.LocationID, move.Qty)
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

// AppendInTx registra un movimiento usando repos ya atados a una transacción
// abierta por otro caso de uso (consumo, void, recepción). Mismas reglas de
// atomicidad: movimiento y snapshot comparten la tx del caller.
func AppendInTx(
	ctx context.Context,
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	move *entity.StockMove,
) error {
	if !entity.ValidReason(move.Reason) {
		return domain.ErrInvalidReason
	}
	if move.Qty.IsZero() {
		return domain.ErrInvalidInput
	}
	if move.CreatedAt.IsZero() {
		move.CreatedAt = time.Now()
	}
	if err := movRepo.Create(ctx, move); err != nil {
		return err
	}
	return stockRepo.ApplyDelta(ctx, move.PartID, move.LocationID, move.Qty)
}
