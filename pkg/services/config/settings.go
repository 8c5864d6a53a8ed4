package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/decision-simulator/pkg/services/simulation"
)

const EnvPrefix = "BDS"

type Settings struct {
	AppName                  string            `mapstructure:"app_name"`
	APIPrefix                string            `mapstructure:"api_prefix"`
	WebSocketRoute           string            `mapstructure:"websocket_route"`
	Addr                     string            `mapstructure:"addr"`
	DatabasePath             string            `mapstructure:"database_path"`
	JWTSecret                string            `mapstructure:"jwt_secret"`
	JWTAlgorithm             string            `mapstructure:"jwt_algorithm"`
	AccessTokenExpireMinutes int               `mapstructure:"access_token_expire_minutes"`
	AllowedOrigins           []string          `mapstructure:"allowed_origins"`
	CatalogPath              string            `mapstructure:"catalog_path"`
	CacheSize                int               `mapstructure:"cache_size"`
	ShutdownTimeout          time.Duration     `mapstructure:"shutdown_timeout"`
	LogLevel                 string            `mapstructure:"log_level"`
	Engine                   simulation.Config `mapstructure:"engine"`
}

func (s Settings) AccessTokenTTL() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	engine := simulation.DefaultConfig()

	v.SetDefault("app_name", "Business Decision Simulator API")
	v.SetDefault("api_prefix", "/api")
	v.SetDefault("websocket_route", "/ws/simulate")
	v.SetDefault("addr", ":8000")
	v.SetDefault("database_path", "simulator.db")
	v.SetDefault("jwt_secret", "change-this-secret")
	v.SetDefault("jwt_algorithm", "HS256")
	v.SetDefault("access_token_expire_minutes", 60*4)
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("catalog_path", "")
	v.SetDefault("cache_size", 256)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("engine.base_salary", engine.BaseSalary)
	v.SetDefault("engine.working_capital_ratio", engine.WorkingCapitalRatio)
	v.SetDefault("engine.debt", engine.Debt)
	v.SetDefault("engine.start_month", int(engine.StartMonth))
}

// LoadSettings reads settings from path (optional) and BDS_* environment variables.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s Settings) validate() error {
	if !strings.HasPrefix(s.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must start with '/': %q", s.APIPrefix)
	}
	if !strings.HasPrefix(s.WebSocketRoute, "/") {
		return fmt.Errorf("websocket_route must start with '/': %q", s.WebSocketRoute)
	}
	if s.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("access_token_expire_minutes must be positive")
	}
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative")
	}
	if s.Engine.StartMonth < time.January || s.Engine.StartMonth > time.December {
		return fmt.Errorf("engine.start_month must be between 1 and 12, got %d", s.Engine.StartMonth)
	}
	return nil
}
