package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/store"
)

// Options configures a Store.
type Options struct {
	// Seed produces the first-run document. Defaults to domain.Seed.
	Seed func() *domain.Catalog

	// SessionTTL bounds the lifetime of active-identity slots.
	// Zero keeps sessions until an explicit logout.
	SessionTTL time.Duration
}

// Store keeps the catalog document and the active-identity slots in Redis.
// Mutations serialize within one process through mu, which makes each
// load-modify-save cycle atomic with respect to other code here; across
// processes the contract stays last-writer-wins with no merge.
type Store struct {
	client *redis.Client
	opts   Options
	ids    *domain.IDGenerator

	mu sync.Mutex
}

// NewStore creates a Redis-backed store.
func NewStore(client *redis.Client, opts Options) *Store {
	if opts.Seed == nil {
		opts.Seed = domain.Seed
	}
	return &Store{
		client: client,
		opts:   opts,
		ids:    domain.NewIDGenerator(),
	}
}

var _ store.CatalogStore = (*Store)(nil)
var _ store.SessionStore = (*Store)(nil)

// Load returns the stored document, seeding the slot on first access.
func (s *Store) Load(ctx context.Context) (*domain.Catalog, error) {
	data, err := s.client.Get(ctx, KeyCatalog).Bytes()
	if errors.Is(err, redis.Nil) {
		seed := s.opts.Seed()
		if err := s.Save(ctx, seed); err != nil {
			return nil, fmt.Errorf("failed to write seed document: %w", err)
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}
	return domain.DecodeCatalog(data)
}

// Save overwrites the stored document unconditionally.
func (s *Store) Save(ctx context.Context, c *domain.Catalog) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := s.client.Set(ctx, KeyCatalog, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// ExportRaw returns the stored text verbatim. An empty slot exports the
// seed document, so a backup taken before any visit is still usable.
func (s *Store) ExportRaw(ctx context.Context) (string, error) {
	text, err := s.client.Get(ctx, KeyCatalog).Result()
	if errors.Is(err, redis.Nil) {
		if _, err := s.Load(ctx); err != nil {
			return "", err
		}
		text, err = s.client.Get(ctx, KeyCatalog).Result()
		if err != nil {
			return "", fmt.Errorf("failed to export catalog: %w", err)
		}
		return text, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to export catalog: %w", err)
	}
	return text, nil
}

// ImportRaw replaces the document wholesale after a validating decode.
// On decode failure the slot is left untouched.
func (s *Store) ImportRaw(ctx context.Context, text string) (*domain.Catalog, error) {
	c, err := domain.DecodeCatalog([]byte(text))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.client.Set(ctx, KeyCatalog, text, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to import catalog: %w", err)
	}
	return c, nil
}

// mutate runs one serialized load-modify-save cycle.
func (s *Store) mutate(ctx context.Context, fn func(c *domain.Catalog) error) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) AddFaculty(ctx context.Context, name string) (*domain.Faculty, error) {
	f := domain.Faculty{ID: s.ids.Faculty(), Name: name}
	if _, err := s.mutate(ctx, func(c *domain.Catalog) error {
		c.Faculties = append(c.Faculties, f)
		return nil
	}); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) AddMajor(ctx context.Context, facultyID, name string) (*domain.Major, error) {
	m := domain.Major{ID: s.ids.Major(), FacultyID: facultyID, Name: name}
	if _, err := s.mutate(ctx, func(c *domain.Catalog) error {
		c.Majors = append(c.Majors, m)
		return nil
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) AddSubject(ctx context.Context, majorID, name string) (*domain.Subject, error) {
	sub := domain.Subject{ID: s.ids.Subject(), MajorID: majorID, Name: name}
	if _, err := s.mutate(ctx, func(c *domain.Catalog) error {
		c.Subjects = append(c.Subjects, sub)
		return nil
	}); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) AddFile(ctx context.Context, nf store.NewFile) (*domain.FileLink, error) {
	if !strings.HasPrefix(nf.URL, "http") {
		return nil, store.ErrURLScheme
	}
	f := domain.FileLink{
		ID:         s.ids.File(),
		Name:       nf.Name,
		SubjectID:  nf.SubjectID,
		Category:   nf.Category,
		Type:       domain.FileLinkType,
		Size:       domain.FileLinkSize,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
		URL:        nf.URL,
	}
	if _, err := s.mutate(ctx, func(c *domain.Catalog) error {
		c.Files = append(c.Files, f)
		return nil
	}); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) AddUser(ctx context.Context, name, username, password string) (*domain.User, error) {
	u := domain.User{
		ID:       s.ids.User(),
		Name:     name,
		Username: username,
		Role:     domain.RoleStudent,
		Password: password,
	}
	if _, err := s.mutate(ctx, func(c *domain.Catalog) error {
		if c.HasUsername(username) {
			return store.ErrUsernameTaken
		}
		c.Users = append(c.Users, u)
		return nil
	}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) DeleteFile(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(c *domain.Catalog) error {
		kept := c.Files[:0]
		for _, f := range c.Files {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		c.Files = kept
		return nil
	})
	return err
}
