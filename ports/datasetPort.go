package ports

import "github.com/amine-amaach/dbstats/services/models"

// DatasetPort describes a service persisting datasets as delimited files.
type DatasetPort interface {
	Write(path string, ds *models.Dataset) error
	Read(path string) (*models.Dataset, error)
}
