package repositories

import "github.com/iandogless-creator/hydronet/pkg/domain/entities"

// MaterialCatalog provides access to pipe material and size data
type MaterialCatalog interface {
	GetMaterial(key entities.MaterialKey) (*entities.PipeMaterial, error)
	GetAllMaterials() ([]*entities.PipeMaterial, error)
	LoadMaterials(materials []*entities.PipeMaterial) error
}
