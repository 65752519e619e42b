// Package store defines the persistence contracts the rest of the
// application programs against. The Redis implementation lives in the
// redis subpackage; tests substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"github.com/abodsh/edufiles/internal/domain"
)

// ErrUsernameTaken is returned by AddUser when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrURLScheme is returned by AddFile when the URL does not lexically start
// with "http".
var ErrURLScheme = errors.New("url must start with http")

// NewFile carries the admin-supplied fields of a file link; id, timestamps
// and the fixed type/size values are stamped by the store.
type NewFile struct {
	Name      string
	SubjectID string
	Category  domain.Category
	URL       string
}

// CatalogStore is the single-document catalog slot. Every mutation is a
// full load-modify-save cycle; the last save wins unconditionally.
type CatalogStore interface {
	// Load returns the stored document, writing and returning the seed
	// when no document exists yet. A stored document that fails the
	// validating decode is an error, never a silently empty catalog.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Save overwrites the stored document wholesale.
	Save(ctx context.Context, c *domain.Catalog) error

	// ExportRaw returns the stored text verbatim, for backup downloads.
	ExportRaw(ctx context.Context) (string, error)

	// ImportRaw replaces the stored document wholesale after a validating
	// decode; on decode failure the slot is left untouched. Returns the
	// decoded document on success.
	ImportRaw(ctx context.Context, text string) (*domain.Catalog, error)

	AddFaculty(ctx context.Context, name string) (*domain.Faculty, error)
	AddMajor(ctx context.Context, facultyID, name string) (*domain.Major, error)
	AddSubject(ctx context.Context, majorID, name string) (*domain.Subject, error)
	AddFile(ctx context.Context, nf NewFile) (*domain.FileLink, error)

	// AddUser registers a student account. The role is always student;
	// admins exist only through seed data or imports.
	AddUser(ctx context.Context, name, username, password string) (*domain.User, error)

	// DeleteFile removes the file link with the given id. Deleting an
	// unknown id is a no-op, not an error.
	DeleteFile(ctx context.Context, id string) error
}

// SessionStore is the active-identity slot, one key per token, held apart
// from the catalog document so signing out never touches catalog data.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, u *domain.User) error
	// GetSession returns (nil, nil) for an unknown or expired token.
	GetSession(ctx context.Context, token string) (*domain.User, error)
	DeleteSession(ctx context.Context, token string) error
}
