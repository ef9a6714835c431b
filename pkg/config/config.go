package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Operators OperatorsConfig `mapstructure:"operators"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type KafkaConfig struct {
	Brokers          []string `mapstructure:"brokers"`
	GroupID          string   `mapstructure:"group_id"`
	EventsTopic      string   `mapstructure:"events_topic"`
	RetryAttempts    int      `mapstructure:"retry_attempts"`
	SessionTimeout   int      `mapstructure:"session_timeout"`
	CommitInterval   int      `mapstructure:"commit_interval"`
	EnableAutoCommit bool     `mapstructure:"enable_auto_commit"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OperatorsConfig struct {
	// OrderLimit caps how many orders one operator may hold at a time.
	OrderLimit int `mapstructure:"order_limit"`
}

type JobsConfig struct {
	DispatchEnabled  bool   `mapstructure:"dispatch_enabled"`
	DispatchSchedule string `mapstructure:"dispatch_schedule"`
}

func Load(configFile string) (*Config, error) {
	viper.SetConfigFile(configFile)
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Default returns a configuration built from defaults and environment
// variables only, used when no config file is present.
func Default() *Config {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return &Config{}
	}
	return &config
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.database", "orders")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.group_id", "retail-order-group")
	viper.SetDefault("kafka.events_topic", "order-events")
	viper.SetDefault("kafka.retry_attempts", 3)
	viper.SetDefault("kafka.session_timeout", 30000)
	viper.SetDefault("kafka.commit_interval", 1000)
	viper.SetDefault("kafka.enable_auto_commit", true)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")

	viper.SetDefault("operators.order_limit", 50)

	viper.SetDefault("jobs.dispatch_enabled", true)
	viper.SetDefault("jobs.dispatch_schedule", "@every 5m")
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
}
