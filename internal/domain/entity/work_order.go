package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
	WorkOrderStatusInvoiced   = "invoiced"
)

// Estados de una línea de orden de trabajo.
const (
	LineStatusOpen      = "open"
	LineStatusCompleted = "completed"
	LineStatusInvoiced  = "invoiced"
	LineStatusVoided    = "voided"
)

// WorkOrder representa una orden de trabajo del taller (el dominio de
// trabajos es colaborador externo del motor: aquí solo viven los campos que
// el inventario necesita inspeccionar).
type WorkOrder struct {
	ID           string
	ShopID       string
	Number       string
	CustomerName string
	VehiclePlate string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Invoiced indica si la orden ya fue facturada (inmutable para el void).
func (w WorkOrder) Invoiced() bool { return w.Status == WorkOrderStatusInvoiced }

// WorkOrderLine es una línea de la orden (repuesto o mano de obra). Lleva su
// propio ShopID: es la fuente de verdad del tenant al consumir, no el estado
// que traiga el caller.
type WorkOrderLine struct {
	ID          string
	ShopID      string
	WorkOrderID string
	PartID      string // vacío en líneas de mano de obra
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	Status      string
	VoidedAt    *time.Time
	VoidedBy    string
	VoidReason  string
	VoidNote    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Invoiced indica si la línea ya fue facturada.
func (l WorkOrderLine) Invoiced() bool { return l.Status == LineStatusInvoiced }

// Voided indica si la línea ya fue anulada.
func (l WorkOrderLine) Voided() bool { return l.Status == LineStatusVoided }
