package config

import (
	"fmt"

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
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type PlanningConfig struct {
	HorizonDays        int // ANNUAL bound when the contract has no end date
	DefaultDurationMin int
	DueSoonDays        int // window used by the stats aggregate
	ExpiryWarningDays  int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Planning    PlanningConfig
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
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Planning: PlanningConfig{
			HorizonDays:        v.GetInt("PLANNING_HORIZON_DAYS"),
			DefaultDurationMin: v.GetInt("PLANNING_DEFAULT_DURATION_MIN"),
			DueSoonDays:        v.GetInt("PLANNING_DUE_SOON_DAYS"),
			ExpiryWarningDays:  v.GetInt("PLANNING_EXPIRY_WARNING_DAYS"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7093
	}
	if cfg.Planning.HorizonDays == 0 {
		cfg.Planning.HorizonDays = 365
	}
	if cfg.Planning.DefaultDurationMin == 0 {
		cfg.Planning.DefaultDurationMin = 60
	}
	if cfg.Planning.DueSoonDays == 0 {
		cfg.Planning.DueSoonDays = 7
	}
	if cfg.Planning.ExpiryWarningDays == 0 {
		cfg.Planning.ExpiryWarningDays = 30
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
	if cfg.Planning.HorizonDays < 0 {
		return fmt.Errorf("PLANNING_HORIZON_DAYS must be positive")
	}
	return nil
}
