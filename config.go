package main

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, read from the environment after an
// optional local .env file is loaded.
type Config struct {
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":8081"`
	DBDSN        string `envconfig:"DB_DSN"`
	JWTSecret    string `envconfig:"JWT_SECRET" default:"dev-insecure-secret-change"`
	StatsBaseURL string `envconfig:"STATS_BASE_URL" default:"https://fantasytradecalc.com"`
	UploadBase   string `envconfig:"UPLOAD_BASE" default:"public/screenshots"`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load() // no .env file is fine
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
