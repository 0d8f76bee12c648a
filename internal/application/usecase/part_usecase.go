package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PartUseCase gestiona el catálogo de repuestos del taller.
type PartUseCase struct {
	partRepo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(partRepo repository.PartRepository) *PartUseCase {
	return &PartUseCase{partRepo: partRepo}
}

// PartInput datos de alta/edición de un repuesto.
type PartInput struct {
	SKU         string
	Name        string
	Description string
	UnitCost    decimal.Decimal
	Price       decimal.Decimal
	UnitMeasure string
}

// Create da de alta un repuesto. SKU único por taller (ErrAlreadyExists).
func (uc *PartUseCase) Create(ctx context.Context, in PartInput) (*entity.Part, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	part := &entity.Part{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		UnitCost:    in.UnitCost,
		Price:       in.Price,
		UnitMeasure: in.UnitMeasure,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Get devuelve un repuesto por ID.
func (uc *PartUseCase) Get(ctx context.Context, id string) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// Update edita los datos de catálogo de un repuesto.
func (uc *PartUseCase) Update(ctx context.Context, id string, in PartInput) (*entity.Part, error) {
	part, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.UnitCost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	part.Name = in.Name
	part.Description = in.Description
	part.UnitCost = in.UnitCost
	part.Price = in.Price
	part.UnitMeasure = in.UnitMeasure
	part.UpdatedAt = time.Now()
	if err := uc.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// List lista el catálogo con paginación; con término busca por nombre o SKU
// (insensible a acentos y mayúsculas).
func (uc *PartUseCase) List(ctx context.Context, term string, limit, offset int) ([]*entity.Part, error) {
	if term = strings.TrimSpace(term); term != "" {
		return uc.partRepo.Search(ctx, term, limit, offset)
	}
	return uc.partRepo.List(ctx, limit, offset)
}
