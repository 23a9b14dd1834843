package repositories

import "github.com/iandogless-creator/hydronet/pkg/domain/entities"

// FittingCatalog provides access to fitting loss coefficient data
type FittingCatalog interface {
	GetFitting(key entities.FittingKey) (*entities.Fitting, error)
	GetAllFittings() ([]*entities.Fitting, error)
	LoadFittings(fittings []*entities.Fitting) error
}
