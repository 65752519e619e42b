package scheduler

import (
	"context"
	"testing"

	"github.com/abodsh/edufiles/internal/index"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/store"
)

func TestRefreshLoadsSeedIntoSnapshot(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory(nil)
	snap := index.NewSnapshot()
	r := NewRefresher(m, snap, logger.New("error", false), 0, nil)

	if err := r.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	c, ok := snap.Catalog()
	if !ok {
		t.Fatal("snapshot should hold the document after Refresh")
	}
	if len(c.Faculties) != 3 {
		t.Errorf("Faculties = %d, want seed's 3", len(c.Faculties))
	}
}

func TestRefreshPicksUpOutOfBandWrites(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory(nil)
	snap := index.NewSnapshot()
	r := NewRefresher(m, snap, logger.New("error", false), 0, nil)

	if err := r.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// Simulate another process appending between polls.
	if _, err := m.AddFaculty(ctx, "كلية الحقوق"); err != nil {
		t.Fatalf("AddFaculty() error = %v", err)
	}

	c, _ := snap.Catalog()
	if len(c.Faculties) != 3 {
		t.Fatal("snapshot should still show the old document before the poll")
	}

	if err := r.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	c, _ = snap.Catalog()
	if len(c.Faculties) != 4 {
		t.Errorf("Faculties = %d after refresh, want 4", len(c.Faculties))
	}
}
