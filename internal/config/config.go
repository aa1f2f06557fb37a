package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/RaikyD/b2-orders-service/internal/export"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	// пустой DATABASE_URL - заказы живут в памяти
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	Kafka KafkaConfig `envconfig:"KAFKA"`

	// YAML с данными отправителя; CARRIER_* из окружения перекрывают файл
	CarrierConfig string           `envconfig:"CARRIER_CONFIG"`
	Carrier       export.Constants `envconfig:"CARRIER"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"BROKERS"`
	IntakeTopic string   `envconfig:"INTAKE_TOPIC" default:"orders.intake"`
	ExportTopic string   `envconfig:"EXPORT_TOPIC" default:"orders.exports"`
	GroupID     string   `envconfig:"GROUP_ID" default:"b2-orders-service"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// LoadConfig: значения по умолчанию < YAML файл < переменные окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{Carrier: export.DefaultConstants()}

	// первый проход нужен, чтобы узнать путь к CARRIER_CONFIG
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.CarrierConfig != "" {
		if err := loadCarrierFile(cfg.CarrierConfig, &cfg.Carrier); err != nil {
			return nil, err
		}
		// env поверх файла
		if err := envconfig.Process("", cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.Carrier.Validate(); err != nil {
		return nil, fmt.Errorf("carrier config: %w", err)
	}
	return cfg, nil
}

func loadCarrierFile(path string, c *export.Constants) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read carrier config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("parse carrier config %s: %w", path, err)
	}
	return nil
}
