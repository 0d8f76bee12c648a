package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_moves es append-only: no hay UPDATE ni DELETE aquí.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const stockMoveColumns = `id, shop_id, part_id, location_id, qty, reason, ref_kind, ref_id, created_by, created_at`

// Create persiste un movimiento del ledger. Estampa el shop del contexto.
func (r *StockMoveRepo) Create(ctx context.Context, move *entity.StockMove) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if move.ID == "" {
		move.ID = uuid.New().String()
	}
	move.ShopID = shopID
	query := `
		INSERT INTO stock_moves (id, shop_id, part_id, location_id, qty, reason, ref_kind, ref_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if move.CreatedBy != "" {
		createdBy = &move.CreatedBy
	}
	_, err = r.q.Exec(ctx, query,
		move.ID, move.ShopID, move.PartID, move.LocationID,
		move.Qty, move.Reason, move.RefKind, move.RefID,
		createdBy, move.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock move: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID dentro del taller activo.
func (r *StockMoveRepo) GetByID(ctx context.Context, id string) (*entity.StockMove, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE id = $1 AND shop_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, shopID))
}

// ListByPart lista movimientos de un repuesto en un rango de fechas.
func (r *StockMoveRepo) ListByPart(ctx context.Context, partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE shop_id = $1 AND part_id = $2`
	args := []any{shopID, partID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListByLocation lista movimientos de una ubicación en un rango de fechas.
func (r *StockMoveRepo) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE shop_id = $1 AND location_id = $2`
	args := []any{shopID, locationID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// SumByPartAndLocation suma los deltas del par (repuesto, ubicación).
// El snapshot debe coincidir con este valor en todo punto quiescente.
func (r *StockMoveRepo) SumByPartAndLocation(ctx context.Context, partID, locationID string) (decimal.Decimal, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	query := `
		SELECT COALESCE(SUM(qty), 0)
		FROM stock_moves WHERE shop_id = $1 AND part_id = $2 AND location_id = $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, shopID, partID, locationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock moves: %w", err)
	}
	return sum, nil
}

// FindOrphanConsumes devuelve movimientos consume con referencia work_order
// que no tienen allocation viva que los apunte. Es el paso de reconciliación
// del seam movimiento→allocation: aquí la escritura es una sola transacción,
// pero datos históricos o escrituras externas pueden dejar huérfanos.
func (r *StockMoveRepo) FindOrphanConsumes(ctx context.Context, limit int) ([]*entity.StockMove, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT m.id, m.shop_id, m.part_id, m.location_id, m.qty, m.reason, m.ref_kind, m.ref_id, m.created_by, m.created_at
		FROM stock_moves m
		LEFT JOIN work_order_part_allocations a ON a.stock_move_id = m.id
		WHERE m.shop_id = $1 AND m.reason = $2 AND m.ref_kind = $3 AND a.id IS NULL
		ORDER BY m.created_at ASC LIMIT $4`
	return r.list(ctx, query, shopID, entity.ReasonConsume, entity.RefKindWorkOrder, limit)
}

func (r *StockMoveRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *StockMoveRepo) scanOne(row pgx.Row) (*entity.StockMove, error) {
	m, err := scanStockMove(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return m, nil
}

func (r *StockMoveRepo) scanRow(rows pgx.Rows) (*entity.StockMove, error) {
	m, err := scanStockMove(rows)
	if err != nil {
		return nil, fmt.Errorf("scan stock move: %w", err)
	}
	return m, nil
}

func scanStockMove(row pgx.Row) (*entity.StockMove, error) {
	var m entity.StockMove
	var createdBy *string
	if err := row.Scan(&m.ID, &m.ShopID, &m.PartID, &m.LocationID, &m.Qty,
		&m.Reason, &m.RefKind, &m.RefID, &createdBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// appendDateRange añade condiciones de rango de fechas a un query dinámico.
func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}
