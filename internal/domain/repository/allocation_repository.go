package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AllocationRepository define el puerto de persistencia para las
// asignaciones de repuestos a líneas de orden de trabajo.
//
// Una allocation se crea al consumir y se elimina exactamente una vez: al
// facturar la orden queda (la orden cierra), o al anular la línea se borra
// con el efecto de inventario que decida la disposición. Nunca hay
// soft-void de allocations.
type AllocationRepository interface {
	Create(ctx context.Context, alloc *entity.Allocation) error
	GetByID(ctx context.Context, id string) (*entity.Allocation, error)
	ListByLine(ctx context.Context, workOrderLineID string) ([]*entity.Allocation, error)
	ListByOrder(ctx context.Context, workOrderID string) ([]*entity.Allocation, error)
	Delete(ctx context.Context, id string) error
}
