package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type FleetConfig struct {
	DocumentWarnDays int
	ServiceDueSoonKm int
}

type ExternalServicesConfig struct {
	NotifyServiceURL    string
	NotifyInternalToken string
}

type Config struct {
	Environment      string
	HTTP             HTTPConfig
	DB               DBConfig
	Auth             AuthConfig
	Fleet            FleetConfig
	ExternalServices ExternalServicesConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Fleet: FleetConfig{
			DocumentWarnDays: v.GetInt("DOCUMENT_WARN_DAYS"),
			ServiceDueSoonKm: v.GetInt("SERVICE_DUE_SOON_KM"),
		},
		ExternalServices: ExternalServicesConfig{
			NotifyServiceURL:    v.GetString("NOTIFY_SERVICE_URL"),
			NotifyInternalToken: v.GetString("NOTIFY_INTERNAL_TOKEN"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Fleet.DocumentWarnDays == 0 {
		cfg.Fleet.DocumentWarnDays = 30
	}
	if cfg.Fleet.ServiceDueSoonKm == 0 {
		cfg.Fleet.ServiceDueSoonKm = 500
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Fleet.DocumentWarnDays < 0 {
		return fmt.Errorf("DOCUMENT_WARN_DAYS must not be negative")
	}
	if cfg.Fleet.ServiceDueSoonKm < 0 {
		return fmt.Errorf("SERVICE_DUE_SOON_KM must not be negative")
	}
	return nil
}
