package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

var _ repository.PartStockRepository = (*PartStockRepo)(nil)

// PartStockRepo implementación del snapshot de stock sobre PostgreSQL
// (usable con pool o tx). Solo el ledger escribe aquí, vía ApplyDelta.
type PartStockRepo struct {
	q Querier
}

// NewPartStockRepository construye el adaptador de snapshot. Pasar pool o tx (Querier).
func NewPartStockRepository(q Querier) *PartStockRepo {
	return &PartStockRepo{q: q}
}

// Get obtiene el snapshot de un repuesto en una ubicación. Si el par nunca
// tuvo movimientos devuelve un snapshot en cero (no nil).
func (r *PartStockRepo) Get(ctx context.Context, partID, locationID string) (*entity.PartStock, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT shop_id, part_id, location_id, on_hand, reserved, updated_at
		FROM part_stock WHERE shop_id = $1 AND part_id = $2 AND location_id = $3`
	var s entity.PartStock
	err = r.q.QueryRow(ctx, query, shopID, partID, locationID).Scan(
		&s.ShopID, &s.PartID, &s.LocationID, &s.OnHand, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.PartStock{
				ShopID: shopID, PartID: partID, LocationID: locationID,
				OnHand: decimal.Zero, Reserved: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get part stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma delta a on_hand creando la fila si no existe. El
// incremento ocurre en la BD (on_hand = on_hand + delta), nunca como
// read-modify-write en la aplicación: dos movimientos concurrentes del
// mismo par serializan en esta fila y ninguno pisa el valor del otro.
func (r *PartStockRepo) ApplyDelta(ctx context.Context, partID, locationID string, delta decimal.Decimal) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO part_stock (shop_id, part_id, location_id, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, 0, now())
		ON CONFLICT (shop_id, part_id, location_id)
		DO UPDATE SET on_hand = part_stock.on_hand + EXCLUDED.on_hand, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, shopID, partID, locationID, delta); err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// ListByPart lista los snapshots de un repuesto en todas las ubicaciones
// del taller, en orden estable por código de ubicación (el resolver depende
// de este orden para desempatar).
func (r *PartStockRepo) ListByPart(ctx context.Context, partID string) ([]*entity.PartStock, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT s.shop_id, s.part_id, s.location_id, s.on_hand, s.reserved, s.updated_at
		FROM part_stock s
		JOIN stock_locations l ON l.id = s.location_id
		WHERE s.shop_id = $1 AND s.part_id = $2
		ORDER BY l.code ASC`
	return r.list(ctx, query, shopID, partID)
}

// ListByLocation lista los snapshots de una ubicación con paginación.
func (r *PartStockRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.PartStock, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT shop_id, part_id, location_id, on_hand, reserved, updated_at
		FROM part_stock WHERE shop_id = $1 AND location_id = $2
		ORDER BY part_id ASC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, shopID, locationID, limit, offset)
}

// ListNegative devuelve los pares con on_hand negativo: la anomalía que la
// carrera del resolver heurístico puede producir. Se reporta, no se oculta.
func (r *PartStockRepo) ListNegative(ctx context.Context, limit int) ([]*entity.PartStock, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT shop_id, part_id, location_id, on_hand, reserved, updated_at
		FROM part_stock WHERE shop_id = $1 AND on_hand < 0
		ORDER BY on_hand ASC LIMIT $2`
	return r.list(ctx, query, shopID, limit)
}

func (r *PartStockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PartStock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list part stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.PartStock
	for rows.Next() {
		var s entity.PartStock
		if err := rows.Scan(&s.ShopID, &s.PartID, &s.LocationID, &s.OnHand, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
