package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"depot/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	OrderTransitionPolicy  string `envconfig:"ORDER_TRANSITION_POLICY" default:"strict"`
	OrderNumberMaxAttempts int    `envconfig:"ORDER_NUMBER_MAX_ATTEMPTS" default:"10"`

	// KafkaBrokers is comma separated. Empty disables event publishing.
	KafkaBrokers           []string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderChangedTopic string   `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"depot.order.status-changed"`

	OverdueJobSchedule  string `envconfig:"OVERDUE_JOB_SCHEDULE" default:"0 0 7 * * *"`
	LowStockJobSchedule string `envconfig:"LOW_STOCK_JOB_SCHEDULE" default:"0 30 7 * * *"`
}

// LoadConfig reads envFile into the environment, when it exists, and then
// decodes the environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.TransitionPolicy(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location is the calendar order numbers are issued in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c Config) TransitionPolicy() (order.TransitionPolicy, error) {
	policy, err := order.ParseTransitionPolicy(c.OrderTransitionPolicy)
	if err != nil {
		return policy, fmt.Errorf("ORDER_TRANSITION_POLICY: %w", err)
	}
	return policy, nil
}
