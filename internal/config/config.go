package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// The data directory and store file are explicit values handed to the
// connection provider at construction; nothing resolves paths globally.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Datastore
	DataDir       string `mapstructure:"DATA_DIR"`
	DBFile        string `mapstructure:"DB_FILE"`
	BusyTimeoutMS int    `mapstructure:"DB_BUSY_TIMEOUT_MS"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Assets
	ImagenesPath string `mapstructure:"IMAGENES_PATH"`
	ReportesPath string `mapstructure:"REPORTES_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DB_FILE", "inventario.db")
	viper.SetDefault("DB_BUSY_TIMEOUT_MS", 20000)
	viper.SetDefault("JWT_SECRET", "cambiar-en-produccion")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("IMAGENES_PATH", filepath.Join("assets", "imagenes_productos"))
	viper.SetDefault("REPORTES_PATH", filepath.Join("data", "reportes"))

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BusyTimeout returns the SQLite lock wait limit as a duration.
func (c *Config) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}
