package services

import (
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes used as the "status" label.
const (
	statusOK               = "ok"
	statusMissingCatalog   = "missing_catalog"
	statusQueryNotFound    = "query_not_found"
	statusConnectionFailed = "connection_failed"
	statusExecutionFailed  = "execution_failed"
	statusUnknownFailure   = "error"
)

type metricsService struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	rows          *prometheus.CounterVec
	writeFailures prometheus.Counter
}

// NewMetricsService registers the query runner metrics on a private registry.
func NewMetricsService() *metricsService {
	m := &metricsService{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbstats",
			Name:      "query_runs_total",
			Help:      "Query runs by query name and outcome.",
		}, []string{"query", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dbstats",
			Name:      "query_duration_seconds",
			Help:      "Time spent connecting, executing and materializing a query.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"query"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbstats",
			Name:      "rows_materialized_total",
			Help:      "Rows loaded into datasets by query name.",
		}, []string{"query"}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dbstats",
			Name:      "output_write_failures_total",
			Help:      "Result files that could not be written.",
		}),
	}
	m.registry.MustRegister(m.runs, m.duration, m.rows, m.writeFailures)
	return m
}

// Registry exposes the gatherer, e.g. for promhttp or tests.
func (m *metricsService) Registry() *prometheus.Registry { return m.registry }

func (m *metricsService) observeRun(query string, started time.Time, rows int, err error) {
	m.runs.WithLabelValues(query, runStatus(err)).Inc()
	if err == nil {
		m.duration.WithLabelValues(query).Observe(time.Since(started).Seconds())
		m.rows.WithLabelValues(query).Add(float64(rows))
	}
}

func (m *metricsService) observeWriteFailure() { m.writeFailures.Inc() }

// WriteTextfile dumps the current metrics in the node_exporter textfile format.
func (m *metricsService) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "writing metrics to %s", path)
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, models.ErrMissingCatalogFile):
		return statusMissingCatalog
	case errors.Is(err, models.ErrQueryNotFound):
		return statusQueryNotFound
	case errors.Is(err, models.ErrConnectionFailed):
		return statusConnectionFailed
	case errors.Is(err, models.ErrQueryExecutionFailed):
		return statusExecutionFailed
	}
	return statusUnknownFailure
}
