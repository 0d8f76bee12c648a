package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// LocationUseCase gestiona las ubicaciones de stock del taller.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create da de alta una ubicación. Código único por taller.
func (uc *LocationUseCase) Create(ctx context.Context, code, name string) (*entity.StockLocation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.locationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	location := &entity.StockLocation{
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Get devuelve una ubicación por ID.
func (uc *LocationUseCase) Get(ctx context.Context, id string) (*entity.StockLocation, error) {
	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

// List lista las ubicaciones del taller.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	return uc.locationRepo.List(ctx, limit, offset)
}
