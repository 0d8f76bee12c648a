package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkOrderRequest body para abrir una orden de trabajo.
type CreateWorkOrderRequest struct {
	Number       string `json:"number"`
	CustomerName string `json:"customer_name,omitempty"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
}

// WorkOrderResponse orden de trabajo.
type WorkOrderResponse struct {
	ID           string                  `json:"id"`
	Number       string                  `json:"number"`
	CustomerName string                  `json:"customer_name,omitempty"`
	VehiclePlate string                  `json:"vehicle_plate,omitempty"`
	Status       string                  `json:"status"`
	Lines        []WorkOrderLineResponse `json:"lines,omitempty"`
}

// UpdateWorkOrderStatusRequest body para transicionar el estado de la orden.
type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status"` // open, in_progress, completed, invoiced
}

// AddWorkOrderLineRequest body para agregar una línea (no mueve stock).
type AddWorkOrderLineRequest struct {
	PartID      string          `json:"part_id,omitempty"` // vacío en mano de obra
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// WorkOrderLineResponse línea de orden de trabajo.
type WorkOrderLineResponse struct {
	ID          string          `json:"id"`
	WorkOrderID string          `json:"work_order_id"`
	PartID      string          `json:"part_id,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Status      string          `json:"status"`
	VoidedAt    *time.Time      `json:"voided_at,omitempty"`
	VoidReason  string          `json:"void_reason,omitempty"`
	VoidNote    string          `json:"void_note,omitempty"`
}

// ConsumePartRequest body para consumir un repuesto hacia una línea.
type ConsumePartRequest struct {
	PartID     string           `json:"part_id"`
	Qty        decimal.Decimal  `json:"qty"`                   // magnitud positiva
	LocationID string           `json:"location_id,omitempty"` // vacío delega en el resolver
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`   // override de costo
}

// AllocationResponse asignación de repuesto a línea.
type AllocationResponse struct {
	ID              string           `json:"id"`
	WorkOrderID     string           `json:"work_order_id"`
	WorkOrderLineID string           `json:"work_order_line_id"`
	PartID          string           `json:"part_id"`
	LocationID      string           `json:"location_id"`
	Qty             decimal.Decimal  `json:"qty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	StockMoveID     string           `json:"stock_move_id"`
}

// VoidLineRequest body para DELETE de una línea. Reason es obligatorio si el
// resultado es void; Disposition solo si la línea tiene repuestos asignados.
type VoidLineRequest struct {
	Reason      string `json:"reason,omitempty"`
	Disposition string `json:"disposition,omitempty"` // return_to_stock, keep_consumed, scrap
	Note        string `json:"note,omitempty"`
}

// VoidLineResponse resultado del delete-or-void.
type VoidLineResponse struct {
	Result      string `json:"result"` // deleted | voided
	Disposition string `json:"disposition,omitempty"`
	Returned    int    `json:"returned_allocations"`
	Released    int    `json:"released_allocations"`
}
