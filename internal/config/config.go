package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/joho/godotenv"
)

// Load reads the environment (optionally from a .env file) into the app config
func Load() (models.Config, error) {
	var cfg models.Config

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return cfg, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	cfg.Port = port
	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	cfg.SlabsPath = os.Getenv("SLABS_PATH")

	cfg.DB.DSN = os.Getenv("DSN")
	cfg.DB.DEVDSN = os.Getenv("DEV_DSN")
	if cfg.DB.DSN == "" && cfg.DB.DEVDSN == "" {
		return cfg, fmt.Errorf("neither DSN nor DEV_DSN is set")
	}

	cfg.JWT.SecretKey = os.Getenv("JWT_SECRET")
	if cfg.JWT.SecretKey == "" {
		return cfg, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}
