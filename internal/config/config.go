package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `mapstructure:"ENV" validate:"oneof=local dev prod"`
	Port                string        `mapstructure:"PORT" validate:"required,numeric"`
	DatabaseDriver      string        `mapstructure:"DATABASE_DRIVER" validate:"oneof=sqlite postgres"`
	DatabasePath        string        `mapstructure:"DATABASE_PATH" validate:"required_if=DatabaseDriver sqlite"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL" validate:"required_if=DatabaseDriver postgres"`
	JWTSecret           string        `mapstructure:"JWT_SECRET" validate:"required"`
	TokenDuration       time.Duration `mapstructure:"TOKEN_DURATION" validate:"gt=0"`
	DiscordClientID     string        `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string        `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL  string        `mapstructure:"DISCORD_REDIRECT_URL" validate:"omitempty,url"`
	OTLPEndpoint        string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Seed                bool          `mapstructure:"SEED"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvLocal)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "hotels.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	v.SetDefault("SEED", false)

	v.BindEnv("JWT_SECRET")
	v.BindEnv("DISCORD_CLIENT_ID")
	v.BindEnv("DISCORD_CLIENT_SECRET")
	v.BindEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}
	return cfg
}
