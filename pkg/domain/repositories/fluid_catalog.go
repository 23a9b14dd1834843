package repositories

import "github.com/iandogless-creator/hydronet/pkg/domain/entities"

// FluidCatalog provides access to working fluid property data
type FluidCatalog interface {
	GetFluid(key entities.FluidKey) (*entities.Fluid, error)
	GetAllFluids() ([]*entities.Fluid, error)
	LoadFluids(fluids []*entities.Fluid) error
}
