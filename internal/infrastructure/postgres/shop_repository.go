package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
// No es tenant-scoped: el alta de talleres ocurre antes del contexto.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador de persistencia para talleres.
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

// Create persiste un taller nuevo.
func (r *ShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shops (id, name, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		shop.ID, shop.Name, shop.Phone, shop.Email, shop.Status,
		shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene un taller por ID.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	query := `
		SELECT id, name, phone, email, status, created_at, updated_at
		FROM shops WHERE id = $1`
	var s entity.Shop
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Phone, &s.Email, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// Update actualiza un taller existente.
func (r *ShopRepo) Update(ctx context.Context, shop *entity.Shop) error {
	query := `
		UPDATE shops SET name = $2, phone = $3, email = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		shop.ID, shop.Name, shop.Phone, shop.Email, shop.Status, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// List lista talleres con paginación.
func (r *ShopRepo) List(ctx context.Context, limit, offset int) ([]*entity.Shop, error) {
	query := `
		SELECT id, name, phone, email, status, created_at, updated_at
		FROM shops ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
