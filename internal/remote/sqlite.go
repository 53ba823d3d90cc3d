package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// SQLiteDocuments implements DocumentService on the documents table,
// storing fields as a JSON blob per document.
type SQLiteDocuments struct {
	db *sql.DB
}

func NewSQLiteDocuments(db *sql.DB) *SQLiteDocuments {
	return &SQLiteDocuments{db: db}
}

func (s *SQLiteDocuments) CreateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	blob, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, fields) VALUES (?, ?, ?)`,
		collection, id, string(blob),
	)
	if err != nil {
		return fmt.Errorf("create document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteDocuments) QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM documents
		 WHERE collection = ? AND json_extract(fields, '$.' || ?) = ?
		 ORDER BY created_at ASC`,
		collection, field, value,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s where %s: %w", collection, field, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var blob string
		if err := rows.Scan(&d.ID, &blob); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(blob), &d.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", d.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateDocument merges the given fields into the stored document.
// Explicit nil values are kept as JSON null rather than removing keys,
// so the merge happens in Go instead of json_patch.
func (s *SQLiteDocuments) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var blob string
	err = tx.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update document %s/%s: not found", collection, id)
	}
	if err != nil {
		return fmt.Errorf("load document %s/%s: %w", collection, id, err)
	}

	var current map[string]any
	if err := json.Unmarshal([]byte(blob), &current); err != nil {
		return fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	for k, v := range fields {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET fields = ?, updated_at = datetime('now') WHERE collection = ? AND id = ?`,
		string(merged), collection, id,
	); err != nil {
		return fmt.Errorf("update document %s/%s: %w", collection, id, err)
	}

	return tx.Commit()
}

// SQLiteIdentity implements IdentityService on the accounts table with
// bcrypt password hashes.
type SQLiteIdentity struct {
	db *sql.DB
}

func NewSQLiteIdentity(db *sql.DB) *SQLiteIdentity {
	return &SQLiteIdentity{db: db}
}

func (s *SQLiteIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrBadCredentials
	}
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return "", ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES (?, ?, ?)`,
		id, email, string(hash),
	)
	if err != nil {
		return "", fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (s *SQLiteIdentity) SetDisplayName(ctx context.Context, accountID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET display_name = ?, updated_at = datetime('now') WHERE id = ?`,
		name, accountID,
	)
	if err != nil {
		return fmt.Errorf("set display name: %w", err)
	}
	return nil
}

func (s *SQLiteIdentity) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var id, hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM accounts WHERE email = ?`, email,
	).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return id, nil
}
