package backup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/duetapp/duet/internal/database"
)

type fakeS3 struct {
	puts map[string][]byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	f.puts[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func setupManager(t *testing.T, client s3Client) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "duet.db")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := Config{
		S3:         S3Config{Bucket: "duet-backups", Region: "auto", AccessKey: "k", SecretKey: "s"},
		DBPath:     dbPath,
		Passphrase: "hunter22",
	}
	m := NewManager(cfg, db, slog.New(slog.DiscardHandler))
	m.client = client
	return m
}

func TestRunNowUploadsEncryptedSnapshot(t *testing.T) {
	fake := &fakeS3{}
	m := setupManager(t, fake)

	id, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}
	if id == 0 {
		t.Error("expected backup record id")
	}
	if len(fake.puts) != 1 {
		t.Fatalf("uploads = %d, want 1", len(fake.puts))
	}

	for key, blob := range fake.puts {
		if filepath.Ext(key) != ".enc" {
			t.Errorf("key = %q, want .enc suffix", key)
		}
		// The uploaded blob decrypts back to a SQLite file.
		plain, err := Decrypt(blob, "hunter22")
		if err != nil {
			t.Fatalf("decrypt upload: %v", err)
		}
		if len(plain) < 16 || string(plain[:15]) != "SQLite format 3" {
			t.Error("decrypted snapshot is not a SQLite database")
		}
	}

	st := m.Status()
	if st.State != StateIdle {
		t.Errorf("state = %q, want idle", st.State)
	}
	if st.LastBackup == nil {
		t.Error("expected last_backup to be set")
	}
}

func TestRunNowUploadFailure(t *testing.T) {
	m := setupManager(t, &fakeS3{err: errors.New("bucket gone")})

	if _, err := m.RunNow(context.Background()); err == nil {
		t.Fatal("expected upload error")
	}
	if st := m.Status(); st.State != StateError {
		t.Errorf("state = %q, want error", st.State)
	}
}

func TestManagerDisabledWithoutConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duet.db")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m := NewManager(Config{DBPath: dbPath}, db, slog.New(slog.DiscardHandler))
	if m.Enabled() {
		t.Error("manager should be disabled without S3 config")
	}
	if _, err := m.RunNow(context.Background()); err == nil {
		t.Error("expected error running a disabled manager")
	}
}
