package services

import "github.com/amine-amaach/dbstats/ports"

var (
	_ ports.CatalogPort = (*catalogService)(nil)
	_ ports.RunnerPort  = (*runnerService)(nil)
	_ ports.SummaryPort = (*summaryService)(nil)
	_ ports.DatasetPort = (*csvService)(nil)
	_ ports.MqttPort    = (*mqttService)(nil)
	_ ports.MetricsPort = (*metricsService)(nil)
	_ ports.SeedPort    = (*seedService)(nil)
)
