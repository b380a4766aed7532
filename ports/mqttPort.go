package ports

import (
	"context"
	"encoding/json"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/eclipse/paho.golang/autopaho"
	"go.uber.org/zap"
)

// MqttPort describes a service publishing summary tables to an MQTT broker.
type MqttPort interface {
	Connect(ctx context.Context, logger *zap.SugaredLogger, cfg *utils.Config) (*autopaho.ConnectionManager, context.CancelFunc, error)
	Close(ctx context.Context, cm *autopaho.ConnectionManager, cancel context.CancelFunc, logger *zap.SugaredLogger)
	BuildSummaryPayloads(root, dataset string, numeric models.NumericSummaryTable, categorical models.CategoricalSummaryTable, logger *zap.SugaredLogger) map[string]json.RawMessage
	Publish(ctx context.Context, cm *autopaho.ConnectionManager, logger *zap.SugaredLogger, msgPayloads map[string]json.RawMessage, qos byte, retain bool) int
}
