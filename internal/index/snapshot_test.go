package index

import (
	"testing"

	"github.com/abodsh/edufiles/internal/domain"
)

func TestSnapshotEmpty(t *testing.T) {
	s := NewSnapshot()

	if _, ok := s.Catalog(); ok {
		t.Error("empty snapshot should report no catalog")
	}
	if !s.LastRefresh().IsZero() {
		t.Error("empty snapshot should have zero refresh time")
	}
	u, f, m, sub, fi := s.Counts()
	if u+f+m+sub+fi != 0 {
		t.Error("empty snapshot should count zero records")
	}
}

func TestSnapshotUpdate(t *testing.T) {
	s := NewSnapshot()
	s.Update(domain.Seed())

	c, ok := s.Catalog()
	if !ok {
		t.Fatal("snapshot should hold a catalog after Update")
	}
	if len(c.Faculties) != 3 {
		t.Errorf("Faculties = %d, want 3", len(c.Faculties))
	}
	if s.LastRefresh().IsZero() {
		t.Error("LastRefresh should be set after Update")
	}

	users, faculties, majors, subjects, files := s.Counts()
	if users != 1 || faculties != 3 || majors != 3 || subjects != 2 || files != 0 {
		t.Errorf("Counts() = %d,%d,%d,%d,%d, want 1,3,3,2,0", users, faculties, majors, subjects, files)
	}
}
