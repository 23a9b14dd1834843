package repositories

import "github.com/iandogless-creator/hydronet/pkg/domain/entities"

// PumpCatalog provides access to pump performance curve data
type PumpCatalog interface {
	GetPump(key entities.PumpKey) (*entities.PumpCurve, error)
	GetAllPumps() ([]*entities.PumpCurve, error)
	LoadPumps(pumps []*entities.PumpCurve) error
}
