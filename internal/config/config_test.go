package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "duet.db" {
		t.Errorf("db path = %q, want duet.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DUET_PORT", "9000")
	t.Setenv("DUET_BACKUP_S3_BUCKET", "duet-backups")
	t.Setenv("DUET_BACKUP_PASSPHRASE", "hunter22")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Port)
	}
	if cfg.Backup.S3.Bucket != "duet-backups" {
		t.Errorf("bucket = %q, want duet-backups", cfg.Backup.S3.Bucket)
	}
	if cfg.Backup.Passphrase != "hunter22" {
		t.Error("backup passphrase not loaded")
	}
	if cfg.Backup.DBPath != cfg.DBPath {
		t.Error("backup db path should follow the main db path")
	}
}
