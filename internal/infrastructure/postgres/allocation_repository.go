package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de asignaciones de repuestos sobre
// PostgreSQL (usable con pool o tx).
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `id, shop_id, work_order_id, work_order_line_id, part_id, location_id, qty, unit_cost, stock_move_id, created_by, created_at`

// Create persiste una allocation nueva ligada a su StockMove.
func (r *AllocationRepo) Create(ctx context.Context, alloc *entity.Allocation) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	alloc.ShopID = shopID
	query := `
		INSERT INTO work_order_part_allocations (id, shop_id, work_order_id, work_order_line_id, part_id, location_id, qty, unit_cost, stock_move_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if alloc.CreatedBy != "" {
		createdBy = &alloc.CreatedBy
	}
	_, err = r.q.Exec(ctx, query,
		alloc.ID, alloc.ShopID, alloc.WorkOrderID, alloc.WorkOrderLineID,
		alloc.PartID, alloc.LocationID, alloc.Qty, alloc.UnitCost,
		alloc.StockMoveID, createdBy, alloc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// GetByID obtiene una allocation por ID dentro del taller activo.
func (r *AllocationRepo) GetByID(ctx context.Context, id string) (*entity.Allocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + allocationColumns + ` FROM work_order_part_allocations WHERE id = $1 AND shop_id = $2`
	a, err := scanAllocation(r.q.QueryRow(ctx, query, id, shopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return a, nil
}

// ListByLine lista las allocations de una línea, en orden de creación.
func (r *AllocationRepo) ListByLine(ctx context.Context, workOrderLineID string) ([]*entity.Allocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + allocationColumns + ` FROM work_order_part_allocations WHERE shop_id = $1 AND work_order_line_id = $2 ORDER BY created_at ASC`
	return r.list(ctx, query, shopID, workOrderLineID)
}

// ListByOrder lista las allocations de toda la orden de trabajo.
func (r *AllocationRepo) ListByOrder(ctx context.Context, workOrderID string) ([]*entity.Allocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + allocationColumns + ` FROM work_order_part_allocations WHERE shop_id = $1 AND work_order_id = $2 ORDER BY created_at ASC`
	return r.list(ctx, query, shopID, workOrderID)
}

// Delete elimina la fila de allocation. El movimiento original nunca se
// toca: la reversión de inventario, si aplica, es un movimiento nuevo que
// registra el caso de uso de void antes de llamar aquí.
func (r *AllocationRepo) Delete(ctx context.Context, id string) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `DELETE FROM work_order_part_allocations WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query, id, shopID)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AllocationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Allocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAllocation(row pgx.Row) (*entity.Allocation, error) {
	var a entity.Allocation
	var createdBy *string
	if err := row.Scan(&a.ID, &a.ShopID, &a.WorkOrderID, &a.WorkOrderLineID,
		&a.PartID, &a.LocationID, &a.Qty, &a.UnitCost, &a.StockMoveID,
		&createdBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	return &a, nil
}
