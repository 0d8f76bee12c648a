package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ShopUseCase gestiona talleres. No es tenant-scoped: el alta ocurre antes
// de que exista el contexto de taller.
type ShopUseCase struct {
	shopRepo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(shopRepo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{shopRepo: shopRepo}
}

// Get devuelve un taller por ID.
func (uc *ShopUseCase) Get(ctx context.Context, id string) (*entity.Shop, error) {
	shop, err := uc.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	return shop, nil
}

// Update edita los datos de contacto del taller.
func (uc *ShopUseCase) Update(ctx context.Context, id, name, phone, email string) (*entity.Shop, error) {
	shop, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	shop.Name = name
	shop.Phone = phone
	shop.Email = email
	shop.UpdatedAt = time.Now()
	if err := uc.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}
