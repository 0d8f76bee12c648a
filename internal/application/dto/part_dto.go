package dto

import "github.com/shopspring/decimal"

// PartRequest body para crear/editar un repuesto del catálogo.
type PartRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
}

// PartResponse repuesto del catálogo.
type PartResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
}
