package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
// Tenant-scoped: toda operación toma el taller del contexto (tenant.ShopID)
// y falla con domain.ErrTenantContext si no está establecido.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	// UpdateCost actualiza solo el costo de catálogo (promedio ponderado tras recepción).
	UpdateCost(ctx context.Context, partID string, cost decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	// Search busca por nombre o SKU, insensible a acentos y mayúsculas.
	Search(ctx context.Context, term string, limit, offset int) ([]*entity.Part, error)
}
