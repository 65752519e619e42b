package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/abodsh/edufiles/internal/domain"
)

// Memory is an in-memory CatalogStore and SessionStore with the same
// semantics as the Redis implementation: one serialized text slot for the
// document, one map entry per session token. It exists so handlers, the
// guard and the scheduler can be exercised without a running Redis.
type Memory struct {
	mu       sync.Mutex
	raw      []byte
	sessions map[string]domain.User
	seed     func() *domain.Catalog
	ids      *domain.IDGenerator
}

// NewMemory creates an empty in-memory store. A nil seed uses domain.Seed.
func NewMemory(seed func() *domain.Catalog) *Memory {
	if seed == nil {
		seed = domain.Seed
	}
	return &Memory{
		sessions: make(map[string]domain.User),
		seed:     seed,
		ids:      domain.NewIDGenerator(),
	}
}

var _ CatalogStore = (*Memory)(nil)
var _ SessionStore = (*Memory)(nil)

func (m *Memory) Load(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Memory) loadLocked() (*domain.Catalog, error) {
	if m.raw == nil {
		seed := m.seed()
		data, err := json.Marshal(seed)
		if err != nil {
			return nil, err
		}
		m.raw = data
		return seed, nil
	}
	return domain.DecodeCatalog(m.raw)
}

func (m *Memory) Save(ctx context.Context, c *domain.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(c)
}

func (m *Memory) saveLocked(c *domain.Catalog) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.raw = data
	return nil
}

func (m *Memory) ExportRaw(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		if _, err := m.loadLocked(); err != nil {
			return "", err
		}
	}
	return string(m.raw), nil
}

func (m *Memory) ImportRaw(ctx context.Context, text string) (*domain.Catalog, error) {
	c, err := domain.DecodeCatalog([]byte(text))
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = []byte(text)
	return c, nil
}

func (m *Memory) mutate(fn func(c *domain.Catalog) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return m.saveLocked(c)
}

func (m *Memory) AddFaculty(ctx context.Context, name string) (*domain.Faculty, error) {
	f := domain.Faculty{ID: m.ids.Faculty(), Name: name}
	if err := m.mutate(func(c *domain.Catalog) error {
		c.Faculties = append(c.Faculties, f)
		return nil
	}); err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *Memory) AddMajor(ctx context.Context, facultyID, name string) (*domain.Major, error) {
	mj := domain.Major{ID: m.ids.Major(), FacultyID: facultyID, Name: name}
	if err := m.mutate(func(c *domain.Catalog) error {
		c.Majors = append(c.Majors, mj)
		return nil
	}); err != nil {
		return nil, err
	}
	return &mj, nil
}

func (m *Memory) AddSubject(ctx context.Context, majorID, name string) (*domain.Subject, error) {
	sub := domain.Subject{ID: m.ids.Subject(), MajorID: majorID, Name: name}
	if err := m.mutate(func(c *domain.Catalog) error {
		c.Subjects = append(c.Subjects, sub)
		return nil
	}); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (m *Memory) AddFile(ctx context.Context, nf NewFile) (*domain.FileLink, error) {
	if !strings.HasPrefix(nf.URL, "http") {
		return nil, ErrURLScheme
	}
	f := domain.FileLink{
		ID:         m.ids.File(),
		Name:       nf.Name,
		SubjectID:  nf.SubjectID,
		Category:   nf.Category,
		Type:       domain.FileLinkType,
		Size:       domain.FileLinkSize,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
		URL:        nf.URL,
	}
	if err := m.mutate(func(c *domain.Catalog) error {
		c.Files = append(c.Files, f)
		return nil
	}); err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *Memory) AddUser(ctx context.Context, name, username, password string) (*domain.User, error) {
	u := domain.User{
		ID:       m.ids.User(),
		Name:     name,
		Username: username,
		Role:     domain.RoleStudent,
		Password: password,
	}
	if err := m.mutate(func(c *domain.Catalog) error {
		if c.HasUsername(username) {
			return ErrUsernameTaken
		}
		c.Users = append(c.Users, u)
		return nil
	}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *Memory) DeleteFile(ctx context.Context, id string) error {
	return m.mutate(func(c *domain.Catalog) error {
		kept := c.Files[:0]
		for _, f := range c.Files {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		c.Files = kept
		return nil
	})
}

func (m *Memory) SaveSession(ctx context.Context, token string, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = *u
	return nil
}

func (m *Memory) GetSession(ctx context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
