package index

import (
	"sync"
	"time"

	"github.com/abodsh/edufiles/internal/domain"
)

// Snapshot holds the most recently loaded catalog document so browsing
// handlers never block on storage. The refresher replaces it periodically;
// mutations push the post-write document so a writer sees its own change
// without waiting for the next poll.
type Snapshot struct {
	mu        sync.RWMutex
	catalog   *domain.Catalog
	refreshed time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Update replaces the held document.
func (s *Snapshot) Update(c *domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.refreshed = time.Now()
}

// Catalog returns the held document and whether one has been loaded yet.
// Callers treat the document as read-only; mutations go through the store.
func (s *Snapshot) Catalog() (*domain.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.catalog != nil
}

// LastRefresh returns when the document was last replaced.
func (s *Snapshot) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// Counts returns the record counts of the held document, all zero when
// nothing is loaded yet.
func (s *Snapshot) Counts() (users, faculties, majors, subjects, files int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return 0, 0, 0, 0, 0
	}
	c := s.catalog
	return len(c.Users), len(c.Faculties), len(c.Majors), len(c.Subjects), len(c.Files)
}
