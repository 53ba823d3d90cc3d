// Package remote defines the ports for the external collaborators the
// auth workflow talks to: an identity service for accounts and a
// document service for the shared users directory.
package remote

import (
	"context"
	"errors"
)

// UsersCollection is the only collection the app consumes.
const UsersCollection = "users"

var (
	ErrEmailInUse     = errors.New("email already in use")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrBadCredentials = errors.New("invalid email or password")
)

// Document is one record in a collection, its fields untyped the way a
// document database returns them.
type Document struct {
	ID     string
	Fields map[string]any
}

// String returns the named field as a string, or "" when absent or of
// another type.
func (d Document) String(field string) string {
	s, _ := d.Fields[field].(string)
	return s
}

// DocumentService is the document database surface the app consumes:
// create by id, query by field equality, partial update by id.
type DocumentService interface {
	CreateDocument(ctx context.Context, collection, id string, fields map[string]any) error
	QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error)
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error
}

// IdentityService manages account credentials. Authenticate and
// CreateAccount share one backend so login and register cannot drift.
type IdentityService interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SetDisplayName(ctx context.Context, accountID, name string) error
	Authenticate(ctx context.Context, email, password string) (string, error)
}
