// Package tenant lleva el taller activo en el context.Context de la operación.
//
// El almacenamiento aísla filas por shop_id; toda escritura o lectura sobre
// tablas del taller exige que el shop activo esté en el contexto. Una
// operación sin contexto falla con domain.ErrTenantContext en lugar de
// operar sobre todos los talleres.
package tenant

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain"
)

type ctxKey struct{}

// WithShop devuelve un contexto con el taller activo.
func WithShop(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, shopID)
}

// ShopID devuelve el taller activo del contexto.
// Falla con domain.ErrTenantContext si no fue establecido.
func ShopID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok || v == "" {
		return "", domain.ErrTenantContext
	}
	return v, nil
}
