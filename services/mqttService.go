package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type mqttService struct{}

// NewMqttService returns the service publishing summary tables over MQTT.
func NewMqttService() *mqttService {
	return &mqttService{}
}

// Connect implements the MqttPort interface by creating an MQTT client.
// The returned cancel func stops the connection manager.
func (svc mqttService) Connect(ctx context.Context, logger *zap.SugaredLogger, cfg *utils.Config) (*autopaho.ConnectionManager, context.CancelFunc, error) {
	serverURL, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid MQTT server url %q", cfg.ServerURL)
	}

	clientID := cfg.ClientID
	if clientID == "" {
		id, err := nanoid.New()
		if err != nil {
			return nil, nil, errors.Wrap(err, "generating MQTT client id")
		}
		clientID = "dbstats::" + id
	}

	cliCfg := autopaho.ClientConfig{
		BrokerUrls:        []*url.URL{serverURL},
		KeepAlive:         cfg.KeepAlive,
		ConnectRetryDelay: time.Duration(cfg.RetryDelay) * time.Second,
		OnConnectionUp: func(cm *autopaho.ConnectionManager, connAck *paho.Connack) {
			logger.Info(utils.Colorize("MQTT Connection up ✅", utils.Green))
		},
		OnConnectError: func(err error) {
			logger.Errorf("Error whilst attempting connection ❌ %s", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID:      clientID,
			OnClientError: func(err error) { logger.Errorf("Server requested disconnect ✖️ %s", err) },
			OnServerDisconnect: func(d *paho.Disconnect) {
				if d.Properties != nil {
					logger.Warnf("Server requested disconnect ✖️ %s", d.Properties.ReasonString)
				} else {
					logger.Warnf("Server requested disconnect ✖️ reason code: %d", d.ReasonCode)
				}
			},
		},
	}

	if cfg.User != "" {
		cliCfg.SetUsernamePassword(cfg.User, []byte(cfg.Pwd))
	}

	ctx, cancel := context.WithCancel(ctx)
	cm, err := autopaho.NewConnection(ctx, cliCfg)
	if err != nil {
		cancel()
		return nil, nil, errors.Wrapf(err, "connecting to %s", serverURL)
	}
	// AwaitConnection returns immediately if the connection is up and
	// fails once ctx is done.
	if err := cm.AwaitConnection(ctx); err != nil {
		cancel()
		return nil, nil, errors.Wrapf(err, "awaiting connection to %s", serverURL)
	}
	return cm, cancel, nil
}

// Close implements the MqttPort interface by disconnecting the MQTT client.
func (svc mqttService) Close(ctx context.Context, cm *autopaho.ConnectionManager, cancel context.CancelFunc, logger *zap.SugaredLogger) {
	if cm != nil {
		if err := cm.Disconnect(ctx); err != nil {
			logger.Warnf("MQTT disconnect ✖️ %v", err)
		}
	}
	if cancel != nil {
		cancel()
	}
	logger.Info(utils.Colorize("MQTT Connection Closed ✖️", utils.Magenta))
}

// BuildSummaryPayloads encodes every summary record of a dataset as JSON, keyed by
// <root>/<dataset>/<numeric|categorical>/<column>.
func (svc mqttService) BuildSummaryPayloads(root, dataset string, numeric models.NumericSummaryTable, categorical models.CategoricalSummaryTable, logger *zap.SugaredLogger) map[string]json.RawMessage {
	msgPayloads := make(map[string]json.RawMessage, len(numeric)+len(categorical))
	for _, s := range numeric {
		topic := SummaryTopic(root, dataset, "numeric", s.Column)
		if jsonBytes, err := json.Marshal(s); err != nil {
			logger.Errorf("Couldn't marshal summary payload ❌ %v", err)
		} else {
			msgPayloads[topic] = jsonBytes
		}
	}
	for _, s := range categorical {
		topic := SummaryTopic(root, dataset, "categorical", s.Column)
		if jsonBytes, err := json.Marshal(s); err != nil {
			logger.Errorf("Couldn't marshal summary payload ❌ %v", err)
		} else {
			msgPayloads[topic] = jsonBytes
		}
	}
	return msgPayloads
}

// Publish implements the MqttPort interface by publishing every payload
// to its topic. It returns the number of payloads that failed.
func (svc mqttService) Publish(ctx context.Context, cm *autopaho.ConnectionManager, logger *zap.SugaredLogger, msgPayloads map[string]json.RawMessage, qos byte, retain bool) int {
	topics := make([]string, 0, len(msgPayloads))
	for topic := range msgPayloads {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	failed := 0
	for _, topic := range topics {
		logger.Debugf("Sending summary payload for [%s] ⌛", topic)
		pubResp, publishErr := cm.Publish(ctx, &paho.Publish{
			QoS:     qos,
			Topic:   topic,
			Retain:  retain,
			Payload: msgPayloads[topic],
		})
		if publishErr != nil {
			failed++
			logger.Errorf("MQTT publish error ❌ [%s] / [%+v]", publishErr, pubResp)
			continue
		}
		logger.Infow(utils.Colorize(fmt.Sprintf("Summary published to [%s] ✅", topic), utils.Green))
	}
	return failed
}

var topicReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_")

// SummaryTopic builds the topic of one summary record. Topic separators and
// wildcards inside names are replaced by underscores.
func SummaryTopic(root, dataset, kind, column string) string {
	return strings.Join([]string{root, topicReplacer.Replace(dataset), kind, topicReplacer.Replace(column)}, "/")
}
