package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para StockLocation (DIP).
// Tenant-scoped vía contexto.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.StockLocation) error
	GetByID(ctx context.Context, id string) (*entity.StockLocation, error)
	GetByCode(ctx context.Context, code string) (*entity.StockLocation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error)
}
