package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

func TestShopID_ConContexto(t *testing.T) {
	ctx := tenant.WithShop(context.Background(), "shop-1")
	got, err := tenant.ShopID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got)
}

// Sin taller establecido la operación debe fallar, nunca operar global.
func TestShopID_SinContexto_Falla(t *testing.T) {
	_, err := tenant.ShopID(context.Background())
	assert.ErrorIs(t, err, domain.ErrTenantContext)
}

func TestShopID_ShopVacio_Falla(t *testing.T) {
	ctx := tenant.WithShop(context.Background(), "")
	_, err := tenant.ShopID(ctx)
	assert.ErrorIs(t, err, domain.ErrTenantContext)
}

// El último WithShop gana: un caso de uso puede re-anclar el contexto al
// taller dueño del recurso (p.ej. consumo descubre el taller de la línea).
func TestWithShop_Reemplaza(t *testing.T) {
	ctx := tenant.WithShop(context.Background(), "shop-1")
	ctx = tenant.WithShop(ctx, "shop-2")
	got, err := tenant.ShopID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shop-2", got)
}
