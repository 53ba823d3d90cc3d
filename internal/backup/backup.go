// Package backup snapshots the app database, encrypts the snapshot and
// uploads it to S3-compatible storage. Snapshots are manual; there is
// no schedule and no retention policy.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Client is the S3 surface the manager consumes, an interface for
// testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds backup manager configuration.
type Config struct {
	S3         S3Config
	DBPath     string
	Passphrase string
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status is the externally visible manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Manager runs encrypted snapshots of the duet database.
type Manager struct {
	mu     sync.RWMutex
	cfg    Config
	status Status

	db     *sql.DB
	client s3Client
	logger *slog.Logger
}

func NewManager(cfg Config, db *sql.DB, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:    cfg,
		db:     db,
		logger: logger,
		status: Status{State: StateDisabled},
	}
	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" && cfg.Passphrase != "" {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}
	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager is configured to run.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client != nil
}

// Status returns the current manager status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

// RunNow checkpoints the WAL, encrypts a copy of the database file and
// uploads it, recording the attempt in the backups table.
func (m *Manager) RunNow(ctx context.Context) (int64, error) {
	m.mu.RLock()
	client := m.client
	bucket := m.cfg.S3.Bucket
	passphrase := m.cfg.Passphrase
	dbPath := m.cfg.DBPath
	m.mu.RUnlock()

	if client == nil {
		return 0, fmt.Errorf("backup not configured")
	}

	m.setStatus(Status{State: StateRunning})

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	filename := fmt.Sprintf("duet-%s.db.enc", timestamp)
	s3Key := "backups/" + filename

	recordID, err := m.createRecord(filename, s3Key)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return 0, err
	}

	fail := func(err error) (int64, error) {
		m.markFailed(recordID, err)
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return 0, err
	}

	if _, err := m.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fail(fmt.Errorf("wal checkpoint: %w", err))
	}

	plain, err := os.ReadFile(dbPath)
	if err != nil {
		return fail(fmt.Errorf("read database: %w", err))
	}

	enc, err := Encrypt(plain, passphrase)
	if err != nil {
		return fail(fmt.Errorf("encrypt snapshot: %w", err))
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(s3Key),
		Body:          bytes.NewReader(enc),
		ContentLength: aws.Int64(int64(len(enc))),
	})
	if err != nil {
		return fail(fmt.Errorf("upload to s3: %w", err))
	}

	if err := m.markCompleted(recordID, int64(len(enc))); err != nil {
		m.logger.Error("mark backup completed", "error", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now})
	m.logger.Info("backup uploaded", "key", s3Key, "bytes", len(enc))
	return recordID, nil
}

func (m *Manager) createRecord(filename, s3Key string) (int64, error) {
	result, err := m.db.Exec(
		`INSERT INTO backups (filename, s3_key, status) VALUES (?, ?, 'pending')`,
		filename, s3Key,
	)
	if err != nil {
		return 0, fmt.Errorf("create backup record: %w", err)
	}
	return result.LastInsertId()
}

func (m *Manager) markCompleted(id, sizeBytes int64) error {
	_, err := m.db.Exec(
		`UPDATE backups SET status = 'completed', size_bytes = ?, completed_at = datetime('now') WHERE id = ?`,
		sizeBytes, id,
	)
	return err
}

func (m *Manager) markFailed(id int64, cause error) {
	if _, err := m.db.Exec(
		`UPDATE backups SET status = 'failed', error_message = ? WHERE id = ?`,
		cause.Error(), id,
	); err != nil {
		m.logger.Error("mark backup failed", "error", err)
	}
}
