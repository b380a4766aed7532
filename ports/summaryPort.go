package ports

import "github.com/amine-amaach/dbstats/services/models"

type SummaryPort interface {
	Numeric(ds *models.Dataset) models.NumericSummaryTable
	Categorical(ds *models.Dataset) models.CategoricalSummaryTable
}
