// Package config loads runtime configuration from the environment,
// with an optional .env file for development.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/duetapp/duet/internal/backup"
)

type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string
	Backup    backup.Config
}

// Load reads DUET_* variables, first merging a .env file if one
// exists. Missing file is not an error.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:      envOr("DUET_PORT", "8080"),
		DBPath:    envOr("DUET_DB_PATH", "duet.db"),
		LogLevel:  envOr("DUET_LOG_LEVEL", "info"),
		LogFormat: envOr("DUET_LOG_FORMAT", "text"),
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  os.Getenv("DUET_BACKUP_S3_ENDPOINT"),
				Bucket:    os.Getenv("DUET_BACKUP_S3_BUCKET"),
				Region:    envOr("DUET_BACKUP_S3_REGION", "auto"),
				AccessKey: os.Getenv("DUET_BACKUP_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("DUET_BACKUP_S3_SECRET_KEY"),
			},
			Passphrase: os.Getenv("DUET_BACKUP_PASSPHRASE"),
		},
	}
	cfg.Backup.DBPath = cfg.DBPath
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
