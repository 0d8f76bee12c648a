package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Login es pre-tenant: busca por email global, el shop sale del usuario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndShop(ctx context.Context, email, shopID string) (*entity.User, error)
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.User, error)
}
