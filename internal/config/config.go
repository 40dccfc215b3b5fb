package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	DBDSN             string `envconfig:"DB_DSN" default:"vitrine.db"` // sqlite file in project root
	LogFile           string `envconfig:"LOG_FILE" default:"./vitrine.log"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"` // bcrypt; empty disables admin endpoints
	// Base URL for the renderable payment code image; the copy-paste
	// payload is appended as a query value.
	CodeImageBase string `envconfig:"CODE_IMAGE_BASE" default:"https://quickchart.io/qr?text="`
}

func Load() Config {
	// .env is optional; real env always wins.
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile)
	return cfg
}
