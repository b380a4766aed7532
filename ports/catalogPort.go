package ports

import (
	"io"

	"github.com/amine-amaach/dbstats/services/models"
)

// CatalogPort describes a service that reads the query catalog.
type CatalogPort interface {

	// Load reads the catalog file at path, failing with ErrMissingCatalogFile
	// when it does not exist.
	Load(path string) (*models.Catalog, error)

	// Parse builds a catalog from its text form.
	Parse(r io.Reader) (*models.Catalog, error)
}
