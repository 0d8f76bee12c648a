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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de órdenes de trabajo sobre PostgreSQL
// (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, shop_id, number, customer_name, vehicle_plate, status, created_at, updated_at`
const workOrderLineColumns = `id, shop_id, work_order_id, part_id, description, qty, unit_price, status, voided_at, voided_by, void_reason, void_note, created_at, updated_at`

// CreateOrder persiste una orden de trabajo nueva.
func (r *WorkOrderRepo) CreateOrder(ctx context.Context, order *entity.WorkOrder) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.ShopID = shopID
	query := `
		INSERT INTO work_orders (id, shop_id, number, customer_name, vehicle_plate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.ShopID, order.Number, order.CustomerName,
		order.VehiclePlate, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetOrderByID obtiene una orden por ID dentro del taller activo.
func (r *WorkOrderRepo) GetOrderByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1 AND shop_id = $2`
	var w entity.WorkOrder
	err = r.q.QueryRow(ctx, query, id, shopID).Scan(
		&w.ID, &w.ShopID, &w.Number, &w.CustomerName, &w.VehiclePlate,
		&w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &w, nil
}

// ListOrders lista las órdenes del taller con paginación.
func (r *WorkOrderRepo) ListOrders(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE shop_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		var w entity.WorkOrder
		if err := rows.Scan(&w.ID, &w.ShopID, &w.Number, &w.CustomerName,
			&w.VehiclePlate, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// UpdateOrderStatus cambia el estado de una orden.
func (r *WorkOrderRepo) UpdateOrderStatus(ctx context.Context, id, status string) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE work_orders SET status = $3, updated_at = now() WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query, id, shopID, status)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine persiste una línea nueva en una orden.
func (r *WorkOrderRepo) CreateLine(ctx context.Context, line *entity.WorkOrderLine) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.ShopID = shopID
	query := `
		INSERT INTO work_order_lines (id, shop_id, work_order_id, part_id, description, qty, unit_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	partID := (*string)(nil)
	if line.PartID != "" {
		partID = &line.PartID
	}
	_, err = r.q.Exec(ctx, query,
		line.ID, line.ShopID, line.WorkOrderID, partID, line.Description,
		line.Qty, line.UnitPrice, line.Status, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order line: %w", err)
	}
	return nil
}

// GetLineAnyShop busca la línea SIN filtrar por tenant. Es el punto de
// entrada del consumo y del void: la línea lleva su propio shop_id y ese
// sello es la fuente de verdad del tenant, no el estado del caller.
func (r *WorkOrderRepo) GetLineAnyShop(ctx context.Context, id string) (*entity.WorkOrderLine, error) {
	query := `SELECT ` + workOrderLineColumns + ` FROM work_order_lines WHERE id = $1`
	return r.scanLine(r.q.QueryRow(ctx, query, id))
}

// GetLineByID obtiene una línea dentro del taller activo.
func (r *WorkOrderRepo) GetLineByID(ctx context.Context, id string) (*entity.WorkOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workOrderLineColumns + ` FROM work_order_lines WHERE id = $1 AND shop_id = $2`
	return r.scanLine(r.q.QueryRow(ctx, query, id, shopID))
}

// ListLinesByOrder lista las líneas de una orden.
func (r *WorkOrderRepo) ListLinesByOrder(ctx context.Context, workOrderID string) ([]*entity.WorkOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workOrderLineColumns + ` FROM work_order_lines WHERE shop_id = $1 AND work_order_id = $2 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, shopID, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list work order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrderLine
	for rows.Next() {
		l, err := scanWorkOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// MarkLineVoided estampa la línea como anulada con actor, razón y nota.
func (r *WorkOrderRepo) MarkLineVoided(ctx context.Context, line *entity.WorkOrderLine) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE work_order_lines
		SET status = $3, voided_at = $4, voided_by = $5, void_reason = $6, void_note = $7, updated_at = now()
		WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		line.ID, shopID, entity.LineStatusVoided,
		line.VoidedAt, line.VoidedBy, line.VoidReason, line.VoidNote,
	)
	if err != nil {
		return fmt.Errorf("mark line voided: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina la fila de la línea (solo hard delete sin allocations).
func (r *WorkOrderRepo) DeleteLine(ctx context.Context, id string) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `DELETE FROM work_order_lines WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query, id, shopID)
	if err != nil {
		return fmt.Errorf("delete work order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkOrderRepo) scanLine(row pgx.Row) (*entity.WorkOrderLine, error) {
	l, err := scanWorkOrderLine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order line: %w", err)
	}
	return l, nil
}

func scanWorkOrderLine(row pgx.Row) (*entity.WorkOrderLine, error) {
	var l entity.WorkOrderLine
	var partID, voidedBy, voidReason, voidNote *string
	if err := row.Scan(&l.ID, &l.ShopID, &l.WorkOrderID, &partID, &l.Description,
		&l.Qty, &l.UnitPrice, &l.Status, &l.VoidedAt, &voidedBy,
		&voidReason, &voidNote, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if partID != nil {
		l.PartID = *partID
	}
	if voidedBy != nil {
		l.VoidedBy = *voidedBy
	}
	if voidReason != nil {
		l.VoidReason = *voidReason
	}
	if voidNote != nil {
		l.VoidNote = *voidNote
	}
	return &l, nil
}
