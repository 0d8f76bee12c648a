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
	"github.com/jhoicas/Taller-api/pkg/normalize"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del catálogo de repuestos sobre PostgreSQL
// (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, shop_id, sku, name, description, unit_cost, price, unit_measure, created_at, updated_at`

// Create persiste un repuesto nuevo. ErrDuplicate si el SKU ya existe en el taller.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	part.ShopID = shopID
	query := `
		INSERT INTO parts (id, shop_id, sku, name, description, unit_cost, price, unit_measure, search_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		part.ID, part.ShopID, part.SKU, part.Name, part.Description,
		part.UnitCost, part.Price, part.UnitMeasure,
		normalize.Fold(part.Name), part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID dentro del taller activo.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 AND shop_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, shopID))
}

// GetBySKU obtiene un repuesto por su SKU.
func (r *PartRepo) GetBySKU(ctx context.Context, sku string) (*entity.Part, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + partColumns + ` FROM parts WHERE shop_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, shopID, sku))
}

// Update actualiza los campos editables del repuesto.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE parts SET name = $3, description = $4, unit_cost = $5, price = $6,
			unit_measure = $7, search_name = $8, updated_at = $9
		WHERE id = $1 AND shop_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		part.ID, shopID, part.Name, part.Description, part.UnitCost,
		part.Price, part.UnitMeasure, normalize.Fold(part.Name), part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo de catálogo (promedio ponderado tras una recepción).
func (r *PartRepo) UpdateCost(ctx context.Context, partID string, cost decimal.Decimal) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	query := `UPDATE parts SET unit_cost = $3, updated_at = now() WHERE id = $1 AND shop_id = $2`
	if _, err := r.q.Exec(ctx, query, partID, shopID, cost); err != nil {
		return fmt.Errorf("update part cost: %w", err)
	}
	return nil
}

// List lista los repuestos del taller con paginación.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + partColumns + ` FROM parts WHERE shop_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, shopID, limit, offset)
}

// Search busca por nombre (sin acentos, case-insensitive) o SKU.
func (r *PartRepo) Search(ctx context.Context, term string, limit, offset int) ([]*entity.Part, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	pattern := "%" + normalize.Term(term) + "%"
	query := `
		SELECT ` + partColumns + ` FROM parts
		WHERE shop_id = $1 AND (search_name LIKE $2 OR lower(sku) LIKE $2)
		ORDER BY name ASC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, shopID, pattern, limit, offset)
}

func (r *PartRepo) scanOne(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.ID, &p.ShopID, &p.SKU, &p.Name, &p.Description,
		&p.UnitCost, &p.Price, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

func (r *PartRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.ShopID, &p.SKU, &p.Name, &p.Description,
			&p.UnitCost, &p.Price, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
