package utils

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration variables of the application, read from a
// config file, environment variables or command-line flags.
type Config struct {
	//Viper uses the mapstructure package under the hood for unmarshaling values.
	DBURL           string `mapstructure:"DB_URL"`
	QueriesFile     string `mapstructure:"QUERIES_FILE"`
	OutputDir       string `mapstructure:"OUTPUT_DIR"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	MetricsTextfile string `mapstructure:"METRICS_TEXTFILE"`
	MQTTEnabled     bool   `mapstructure:"MQTT_ENABLED"`
	ServerURL       string `mapstructure:"MQTT_SERVER_URL"`
	User            string `mapstructure:"MQTT_SERVER_USER"`
	Pwd             string `mapstructure:"MQTT_SERVER_PWD"`
	Retain          bool   `mapstructure:"MQTT_SERVER_RETAIN"`
	Qos             byte   `mapstructure:"MQTT_SERVER_QOS"`
	ClientID        string `mapstructure:"MQTT_CLIENT_ID"`
	KeepAlive       uint16 `mapstructure:"MQTT_KEEP_ALIVE"`
	RetryDelay      uint16 `mapstructure:"MQTT_RETRY_DELAY"`
	RootTopic       string `mapstructure:"MQTT_ROOT_TOPIC"`
}

// NewConfig loads the configuration through v. cfgFile, when set, replaces the
// default lookup of config.json in ./configs/ and the working directory.
func NewConfig(logger *zap.SugaredLogger, v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadConfig(logger, v, cfgFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads configuration from file or environment variables.
// Environment variables override the file; bound flags override both.
func (config *Config) LoadConfig(logger *zap.SugaredLogger, v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("./configs/")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("json")
	}

	// AutomaticEnv() automatically override values that it has read from config file with the values of
	// the corresponding environment variables if they exist.
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
		logger.Debug(Colorize("Config not found, using default values 🔧", Magenta))
	} else {
		logger.Debugf("Config loaded from %s", v.ConfigFileUsed())
	}

	return v.Unmarshal(config)
}

// setDefaults only matters for keys the user provides neither via config, ENV nor flags.
func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_URL", "sqlite://data.db")
	v.SetDefault("QUERIES_FILE", "queries.txt")
	v.SetDefault("OUTPUT_DIR", "output_data")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_TEXTFILE", "")
	v.SetDefault("MQTT_ENABLED", false)
	v.SetDefault("MQTT_SERVER_URL", "mqtt://localhost:1883")
	v.SetDefault("MQTT_SERVER_USER", "")
	v.SetDefault("MQTT_SERVER_PWD", "")
	v.SetDefault("MQTT_SERVER_QOS", 0)
	v.SetDefault("MQTT_SERVER_RETAIN", false)
	v.SetDefault("MQTT_CLIENT_ID", "")
	v.SetDefault("MQTT_KEEP_ALIVE", 30)
	v.SetDefault("MQTT_RETRY_DELAY", 10)
	v.SetDefault("MQTT_ROOT_TOPIC", "dbstats")
}
