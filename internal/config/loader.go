package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads a YAML file and applies APP_* environment overrides on top.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only sees keys viper already knows; secrets usually aren't in the file.
	for _, key := range []string{"postgres.user", "postgres.password", "postgres.db"} {
		_ = v.BindEnv(key)
	}

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "game-tracker-service")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 5000)
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite.path", "data/tracker.db")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("gateway.base_url", "http://localhost:5000/api")
	v.SetDefault("gateway.timeout_seconds", 10)
}

func (c *Config) validate() error {
	v := validator.New()
	for name, section := range map[string]any{"app": c.App, "storage": c.Storage, "telemetry": c.Telemetry, "gateway": c.Gateway} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("%s config validation error: %w", name, err)
		}
	}

	if c.Storage.Driver == DriverSQLite && c.Storage.SQLite.Path == "" {
		return errors.New("storage.sqlite.path is required for the sqlite driver")
	}
	if c.Storage.Driver == DriverPostgres {
		var missing []string
		if c.Postgres.User == "" {
			missing = append(missing, "APP_POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "APP_POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "APP_POSTGRES_DB")
		}
		if len(missing) > 0 {
			return fmt.Errorf("postgres driver requires env: %s", strings.Join(missing, ", "))
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return errors.New("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}
