package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// LocationResolverUseCase decide de qué ubicación sale un repuesto cuando el
// caller no la indica. Heurística best-bin: la ubicación con mayor
// disponible (en mano menos reservado). Es una conveniencia, no una
// verificación: la ubicación elegida puede quedar en negativo tras el
// consumo.
type LocationResolverUseCase struct {
	stockRepo    repository.PartStockRepository
	locationRepo repository.LocationRepository
}

// NewLocationResolverUseCase construye el resolver.
func NewLocationResolverUseCase(
	stockRepo repository.PartStockRepository,
	locationRepo repository.LocationRepository,
) *LocationResolverUseCase {
	return &LocationResolverUseCase{stockRepo: stockRepo, locationRepo: locationRepo}
}

// Resolve devuelve el ID de la ubicación a usar.
//
//   - Con explicitID: la ubicación debe existir en el taller activo
//     (ErrNotFound si no), gane o no en disponible.
//   - Sin explicitID: gana el snapshot con mayor Available(); empates se
//     rompen de forma estable por código de ubicación ascendente (el listado
//     ya viene en ese orden y el barrido solo reemplaza con mayor estricto).
//   - Sin snapshots, o si la heurística no produce candidato: fallback a la
//     ubicación por defecto del taller, auto-provisionándola si no existe.
func (uc *LocationResolverUseCase) Resolve(ctx context.Context, partID, explicitID string) (string, error) {
	if explicitID != "" {
		location, err := uc.locationRepo.GetByID(ctx, explicitID)
		if err != nil {
			return "", err
		}
		if location == nil {
			return "", domain.ErrNotFound
		}
		return location.ID, nil
	}

	snapshots, err := uc.stockRepo.ListByPart(ctx, partID)
	if err != nil {
		return "", err
	}
	var best *entity.PartStock
	for _, s := range snapshots {
		if best == nil || s.Available().GreaterThan(best.Available()) {
			best = s
		}
	}
	if best != nil {
		return best.LocationID, nil
	}
	return uc.EnsureDefault(ctx)
}

// EnsureDefault devuelve el ID de la ubicación por defecto del taller,
// creándola si todavía no existe. Primer uso de inventario de un taller
// recién creado pasa por aquí.
func (uc *LocationResolverUseCase) EnsureDefault(ctx context.Context) (string, error) {
	location, err := uc.locationRepo.GetByCode(ctx, entity.DefaultLocationCode)
	if err != nil {
		return "", err
	}
	if location != nil {
		return location.ID, nil
	}
	now := time.Now()
	location = &entity.StockLocation{
		Code:      entity.DefaultLocationCode,
		Name:      "Almacén principal",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		// Carrera con otro primer-uso concurrente: el otro ganó el insert.
		if existing, lookupErr := uc.locationRepo.GetByCode(ctx, entity.DefaultLocationCode); lookupErr == nil && existing != nil {
			return existing.ID, nil
		}
		return "", err
	}
	return location.ID, nil
}
