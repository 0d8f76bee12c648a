package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
// La implementación vive en infrastructure. No es tenant-scoped: el registro
// de talleres ocurre antes de que exista contexto de tenant.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	List(ctx context.Context, limit, offset int) ([]*entity.Shop, error)
}
