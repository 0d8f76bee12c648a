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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de ubicaciones de stock sobre PostgreSQL
// (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación nueva. ErrDuplicate si el código ya existe en el taller.
func (r *LocationRepo) Create(ctx context.Context, location *entity.StockLocation) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	location.ShopID = shopID
	query := `
		INSERT INTO stock_locations (id, shop_id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		location.ID, location.ShopID, location.Code, location.Name,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID dentro del taller activo.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, shop_id, code, name, created_at, updated_at
		FROM stock_locations WHERE id = $1 AND shop_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, shopID))
}

// GetByCode obtiene una ubicación por su código (ej. "MAIN").
func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.StockLocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, shop_id, code, name, created_at, updated_at
		FROM stock_locations WHERE shop_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, shopID, code))
}

// List lista las ubicaciones del taller con paginación, por código.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, shop_id, code, name, created_at, updated_at
		FROM stock_locations WHERE shop_id = $1 ORDER BY code ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLocation
	for rows.Next() {
		var l entity.StockLocation
		if err := rows.Scan(&l.ID, &l.ShopID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) scanOne(row pgx.Row) (*entity.StockLocation, error) {
	var l entity.StockLocation
	err := row.Scan(&l.ID, &l.ShopID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	return &l, nil
}
