package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Quoting QuotingConfig
}

type AppConfig struct {
	Address   string `envconfig:"SERVER_ADDRESS" default:":8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

type DBConfig struct {
	Conn          string `envconfig:"POSTGRES_CONN" required:"true"`
	Database      string `envconfig:"POSTGRES_DATABASE" default:"quotations"`
	MigrationsUrl string `envconfig:"MIGRATIONS_URL" default:"file://migrations"`
}

type QuotingConfig struct {
	DefaultVatPercentage int    `envconfig:"QUOTATION_DEFAULT_VAT" default:"10"`
	DefaultCurrency      string `envconfig:"QUOTATION_DEFAULT_CURRENCY" default:"USD"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
