package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, shop_id, number, vendor_name, status, created_at, updated_at`
const purchaseOrderLineColumns = `id, shop_id, purchase_order_id, part_id, ordered_qty, received_qty, unit_cost, created_at, updated_at`

// CreateOrder persiste una orden de compra nueva.
func (r *PurchaseOrderRepo) CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.ShopID = shopID
	query := `
		INSERT INTO purchase_orders (id, shop_id, number, vendor_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.ShopID, order.Number, order.VendorName,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetOrderByID obtiene una orden de compra por ID dentro del taller activo.
func (r *PurchaseOrderRepo) GetOrderByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 AND shop_id = $2`
	var o entity.PurchaseOrder
	err = r.q.QueryRow(ctx, query, id, shopID).Scan(
		&o.ID, &o.ShopID, &o.Number, &o.VendorName, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// ListOrders lista las órdenes de compra del taller con paginación.
func (r *PurchaseOrderRepo) ListOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE shop_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.ShopID, &o.Number, &o.VendorName,
			&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateOrderStatus cambia el estado de la orden (open/partial/received).
func (r *PurchaseOrderRepo) UpdateOrderStatus(ctx context.Context, id, status string) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE purchase_orders SET status = $3, updated_at = now() WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query, id, shopID, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine persiste una línea de la orden de compra.
func (r *PurchaseOrderRepo) CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.ShopID = shopID
	query := `
		INSERT INTO purchase_order_lines (id, shop_id, purchase_order_id, part_id, ordered_qty, received_qty, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		line.ID, line.ShopID, line.PurchaseOrderID, line.PartID,
		line.OrderedQty, line.ReceivedQty, line.UnitCost,
		line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

// GetLineByID obtiene una línea por ID dentro del taller activo.
func (r *PurchaseOrderRepo) GetLineByID(ctx context.Context, id string) (*entity.PurchaseOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + purchaseOrderLineColumns + ` FROM purchase_order_lines WHERE id = $1 AND shop_id = $2`
	l, err := scanPurchaseOrderLine(r.q.QueryRow(ctx, query, id, shopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order line: %w", err)
	}
	return l, nil
}

// ListLinesByOrder lista todas las líneas de la orden en orden de creación.
func (r *PurchaseOrderRepo) ListLinesByOrder(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + purchaseOrderLineColumns + ` FROM purchase_order_lines WHERE shop_id = $1 AND purchase_order_id = $2 ORDER BY created_at ASC`
	return r.listLines(ctx, query, shopID, purchaseOrderID)
}

// ListOpenLinesByOrder lista las líneas con cantidad pendiente, en orden de
// creación: es el orden FIFO en que una recepción multi-línea las llena.
func (r *PurchaseOrderRepo) ListOpenLinesByOrder(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + purchaseOrderLineColumns + ` FROM purchase_order_lines
		WHERE shop_id = $1 AND purchase_order_id = $2 AND received_qty < ordered_qty
		ORDER BY created_at ASC`
	return r.listLines(ctx, query, shopID, purchaseOrderID)
}

// AddReceivedQty incrementa received_qty de forma atómica. El clamp contra
// ordered_qty lo hace el caso de uso antes de llamar; el CHECK de la tabla
// es la última línea de defensa.
func (r *PurchaseOrderRepo) AddReceivedQty(ctx context.Context, lineID string, qty decimal.Decimal) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE purchase_order_lines
		SET received_qty = received_qty + $3, updated_at = now()
		WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query, lineID, shopID, qty)
	if err != nil {
		return fmt.Errorf("add received qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) listLines(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		l, err := scanPurchaseOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanPurchaseOrderLine(row pgx.Row) (*entity.PurchaseOrderLine, error) {
	var l entity.PurchaseOrderLine
	if err := row.Scan(&l.ID, &l.ShopID, &l.PurchaseOrderID, &l.PartID,
		&l.OrderedQty, &l.ReceivedQty, &l.UnitCost, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
