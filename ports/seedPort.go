package ports

import (
	"context"
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"go.uber.org/zap"
)

// SeedPort describes a service that fills a database with simulated
// power-generator readings to try queries against.
type SeedPort interface {
	Readings(generators, perGenerator int, start time.Time, dropRate float64) []models.Reading
	Seed(ctx context.Context, logger *zap.SugaredLogger, descriptor, table string, readings []models.Reading) error
}
