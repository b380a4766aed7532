package services

import (
	"context"
	"fmt"
	"time"

	"github.com/amine-amaach/dbstats/ports"
	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type runnerService struct {
	catalogSvc  ports.CatalogPort
	dbSvc       *dbService
	csvSvc      ports.DatasetPort
	metrics     *metricsService
	catalogPath string
	outputDir   string
}

// NewRunnerService wires a query runner reading its catalog from catalogPath and
// writing results under outputDir, both on fs. A nil metrics gets a fresh registry.
func NewRunnerService(fs afero.Fs, catalogPath, outputDir string, metrics *metricsService) *runnerService {
	if catalogPath == "" {
		catalogPath = DefaultCatalogFile
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if metrics == nil {
		metrics = NewMetricsService()
	}
	return &runnerService{
		catalogSvc:  NewCatalogService(fs),
		dbSvc:       NewDBService(),
		csvSvc:      NewCSVService(fs),
		metrics:     metrics,
		catalogPath: catalogPath,
		outputDir:   outputDir,
	}
}

// Catalog loads the catalog the runner resolves names against.
func (svc *runnerService) Catalog() (*models.Catalog, error) {
	return svc.catalogSvc.Load(svc.catalogPath)
}

// Run resolves queryName in the catalog, executes it against the database
// behind descriptor and returns every row. The result is then written to
// <outputDir>/<queryName>.csv; a failed write is logged and does not fail the run.
func (svc *runnerService) Run(ctx context.Context, logger *zap.SugaredLogger, queryName, descriptor string) (*models.Dataset, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger = logger.With("RunId", runID, "Query", queryName)

	ds, err := svc.fetch(ctx, logger, queryName, descriptor)
	rows := 0
	if ds != nil {
		rows = ds.Len()
	}
	svc.metrics.observeRun(queryName, started, rows, err)
	if err != nil {
		logger.Errorf("Query failed ❌ %v", err)
		return nil, err
	}
	logger.Infow(utils.Colorize(fmt.Sprintf("Query executed [%s] ✅", queryName), utils.Green),
		"Rows", ds.Len(), "Columns", ds.Width(), "Elapsed", time.Since(started).String())

	path := OutputPath(svc.outputDir, queryName)
	if err := svc.csvSvc.Write(path, ds); err != nil {
		svc.metrics.observeWriteFailure()
		logger.Errorf("Couldn't write query result ❌ %v", err)
	} else {
		logger.Info(utils.Colorize(fmt.Sprintf("Data saved to %s 💾", path), utils.Cyan))
	}
	return ds, nil
}

func (svc *runnerService) fetch(ctx context.Context, logger *zap.SugaredLogger, queryName, descriptor string) (*models.Dataset, error) {
	catalog, err := svc.Catalog()
	if err != nil {
		return nil, err
	}
	query, err := catalog.Get(queryName)
	if err != nil {
		return nil, err
	}
	return svc.dbSvc.Fetch(ctx, logger, queryName, descriptor, query)
}
