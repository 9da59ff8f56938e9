package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port: port,
		Env:  env,
	}, nil
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}
