package ports

import (
	"context"

	"github.com/amine-amaach/dbstats/services/models"
	"go.uber.org/zap"
)

// RunnerPort describes a service that executes catalog queries and persists
// their results.
type RunnerPort interface {

	// Catalog loads the catalog query names are resolved against.
	Catalog() (*models.Catalog, error)

	// Run executes the named query against the database behind descriptor and
	// returns the complete result set.
	Run(ctx context.Context, logger *zap.SugaredLogger, queryName, descriptor string) (*models.Dataset, error)
}
