package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	// AccessSecret enables JWT bearer auth on the API when non-empty.
	AccessSecret string
}

type ScoringConfig struct {
	Workers int
}

type UploadConfig struct {
	MaxBytes int64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Scoring     ScoringConfig
	Upload      UploadConfig
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
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Scoring: ScoringConfig{
			Workers: v.GetInt("SCORING_WORKERS"),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7087
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Scoring.Workers <= 0 {
		cfg.Scoring.Workers = 4
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = 20 << 20
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port < 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTP.Port)
	}
	return nil
}
