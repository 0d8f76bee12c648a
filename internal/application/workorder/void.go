package workorder

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// Resultados posibles al quitar una línea.
const (
	OutcomeDeleted = "deleted" // hard delete: la fila desaparece
	OutcomeVoided  = "voided"  // soft void: la línea queda estampada como anulada
)

// VoidLineUseCase quita una línea de orden de trabajo aplicando la máquina de
// estados delete-vs-void:
//
//   - Hard delete solo si la línea nunca consumió repuestos (sin allocations)
//     y no está en un estado terminal.
//   - En cualquier otro caso, soft void: la línea queda estampada (quién,
//     cuándo, por qué) y cada allocation se resuelve según la disposición.
//   - Líneas u órdenes facturadas son inmutables: ErrConflict.
//
// La reversión de inventario jamás muta el movimiento original: se apunta un
// contramovimiento return_in nuevo y la allocation se elimina.
type VoidLineUseCase struct {
	txRunner TxRunner
	woRepo   repository.WorkOrderRepository
}

// NewVoidLineUseCase construye el caso de uso.
func NewVoidLineUseCase(txRunner TxRunner, woRepo repository.WorkOrderRepository) *VoidLineUseCase {
	return &VoidLineUseCase{txRunner: txRunner, woRepo: woRepo}
}

// VoidInput entrada del delete-or-void.
type VoidInput struct {
	LineID       string
	Reason       string // presente fuerza void; obligatorio siempre que el resultado sea void
	Disposition  string // obligatorio si y solo si la línea tiene allocations
	Note         string
	CallerShopID string
	UserID       string
}

// VoidOutcome describe qué pasó con la línea.
type VoidOutcome struct {
	Result      string // deleted | voided
	Disposition string // vacío en deleted y en voids sin allocations
	Returned    int    // allocations revertidas a stock
	Released    int    // allocations liberadas sin contramovimiento
}

// DeleteOrVoid ejecuta la máquina de estados. Las allocations se listan
// dentro de la transacción: la decisión delete-vs-void y sus efectos son
// atómicos frente a consumos concurrentes sobre la misma línea.
func (uc *VoidLineUseCase) DeleteOrVoid(ctx context.Context, in VoidInput) (*VoidOutcome, error) {
	line, err := uc.woRepo.GetLineAnyShop(ctx, in.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if in.CallerShopID != "" && line.ShopID != in.CallerShopID {
		return nil, domain.ErrForbidden
	}
	ctx = tenant.WithShop(ctx, line.ShopID)

	if line.Invoiced() || line.Voided() {
		return nil, domain.ErrConflict
	}
	order, err := uc.woRepo.GetOrderByID(ctx, line.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Invoiced() {
		return nil, domain.ErrConflict
	}

	var outcome VoidOutcome
	err = uc.txRunner.RunAllocation(ctx, func(
		movRepo repository.StockMoveRepository,
		stockRepo repository.PartStockRepository,
		allocRepo repository.AllocationRepository,
		lineRepo repository.WorkOrderRepository,
	) error {
		allocs, err := allocRepo.ListByLine(ctx, line.ID)
		if err != nil {
			return err
		}

		// Hard delete: solo líneas limpias y no terminales. Una razón
		// presente es intención explícita de void y la línea queda con traza.
		if len(allocs) == 0 && line.Status == entity.LineStatusOpen && in.Reason == "" {
			if err := lineRepo.DeleteLine(ctx, line.ID); err != nil {
				return err
			}
			outcome = VoidOutcome{Result: OutcomeDeleted}
			return nil
		}

		// Soft void: razón siempre; disposición solo si hubo consumo.
		if in.Reason == "" {
			return domain.ErrInvalidInput
		}
		if len(allocs) > 0 {
			if in.Disposition == "" {
				return domain.ErrDispositionRequired
			}
			if !entity.ValidDisposition(in.Disposition) {
				return domain.ErrInvalidDisposition
			}
		}

		now := time.Now()
		for _, alloc := range allocs {
			if in.Disposition == entity.DispositionReturnToStock {
				move := &entity.StockMove{
					PartID:     alloc.PartID,
					LocationID: alloc.LocationID,
					Qty:        alloc.Qty,
					Reason:     entity.ReasonReturnIn,
					RefKind:    entity.RefKindWorkOrder,
					RefID:      line.WorkOrderID,
					CreatedBy:  in.UserID,
					CreatedAt:  now,
				}
				if err := inventory.AppendInTx(ctx, movRepo, stockRepo, move); err != nil {
					return err
				}
				outcome.Returned++
			} else {
				outcome.Released++
			}
			if err := allocRepo.Delete(ctx, alloc.ID); err != nil {
				return err
			}
		}

		voidedAt := now
		line.Status = entity.LineStatusVoided
		line.VoidedAt = &voidedAt
		line.VoidedBy = in.UserID
		line.VoidReason = in.Reason
		line.VoidNote = in.Note
		if err := lineRepo.MarkLineVoided(ctx, line); err != nil {
			return err
		}
		outcome.Result = OutcomeVoided
		if len(allocs) > 0 {
			outcome.Disposition = in.Disposition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
