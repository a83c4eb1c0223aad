package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr        string `validate:"required"`
		AllowOrigin string
	}
	Database struct {
		Driver string `validate:"oneof=mongo sqlite"`
		URI    string `validate:"required_if=Driver mongo"`
		Name   string `validate:"required_if=Driver mongo"`
		Path   string `validate:"required_if=Driver sqlite"`
	}
	Auth struct {
		JWTSecret string `validate:"required"`
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string `validate:"omitempty,url"`
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level string `validate:"oneof=panic fatal error warn warning info debug trace"`
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables in a local .env file fill in anything not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("server.alloworigin", "http://localhost:3000")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "daybook")
	v.SetDefault("database.path", "data/daybook.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "avatars")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
