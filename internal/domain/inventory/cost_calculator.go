package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual negativo o cero, el costo de la entrada manda.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// EffectiveUnitCost resuelve el costo unitario a estampar en una allocation:
// override explícito si viene, si no el costo de catálogo del repuesto, y si
// tampoco hay catálogo, nil (el costo es metadato opcional, el movimiento no
// depende de él).
func EffectiveUnitCost(override *decimal.Decimal, catalogCost decimal.Decimal) *decimal.Decimal {
	if override != nil && !override.IsNegative() {
		c := *override
		return &c
	}
	if catalogCost.IsPositive() {
		c := catalogCost
		return &c
	}
	return nil
}
