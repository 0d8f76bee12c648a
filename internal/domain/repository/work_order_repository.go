package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para órdenes de
// trabajo y sus líneas.
type WorkOrderRepository interface {
	CreateOrder(ctx context.Context, order *entity.WorkOrder) error
	GetOrderByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error

	CreateLine(ctx context.Context, line *entity.WorkOrderLine) error
	// GetLineAnyShop busca la línea sin filtrar por tenant: es el punto de
	// entrada de ConsumePart y del void, que descubren el taller desde el
	// propio sello shop_id de la línea (fuente de verdad, no el caller).
	GetLineAnyShop(ctx context.Context, id string) (*entity.WorkOrderLine, error)
	GetLineByID(ctx context.Context, id string) (*entity.WorkOrderLine, error)
	ListLinesByOrder(ctx context.Context, workOrderID string) ([]*entity.WorkOrderLine, error)
	// MarkLineVoided estampa la línea como anulada (timestamp, actor,
	// razón, nota). No la borra: la traza queda.
	MarkLineVoided(ctx context.Context, line *entity.WorkOrderLine) error
	// DeleteLine elimina la fila (solo hard delete de líneas sin allocations).
	DeleteLine(ctx context.Context, id string) error
}
