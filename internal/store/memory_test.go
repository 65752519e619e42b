package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abodsh/edufiles/internal/domain"
)

func TestLoadSeedsOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	c, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Users) != 1 || c.Users[0].Username != "abod" || c.Users[0].Password != "123" || c.Users[0].Role != domain.RoleAdmin {
		t.Errorf("seed admin = %+v, want abod/123 admin", c.Users)
	}
	if len(c.Faculties) != 3 || len(c.Majors) != 3 || len(c.Subjects) != 2 || len(c.Files) != 0 {
		t.Errorf("seed counts = %d/%d/%d/%d, want 3/3/2/0",
			len(c.Faculties), len(c.Majors), len(c.Subjects), len(c.Files))
	}
}

func TestLoadIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	a, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	b, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Error("two loads without a mutation should be structurally equal")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	if _, err := m.AddFaculty(ctx, "كلية الحقوق"); err != nil {
		t.Fatalf("AddFaculty() error = %v", err)
	}

	exported, err := m.ExportRaw(ctx)
	if err != nil {
		t.Fatalf("ExportRaw() error = %v", err)
	}
	if _, err := m.ImportRaw(ctx, exported); err != nil {
		t.Fatalf("ImportRaw(ExportRaw()) error = %v", err)
	}

	again, err := m.ExportRaw(ctx)
	if err != nil {
		t.Fatalf("second ExportRaw() error = %v", err)
	}
	if exported != again {
		t.Error("import of an export should leave the stored text identical")
	}
}

func TestImportRejectsAndLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	before, err := m.ExportRaw(ctx)
	if err != nil {
		t.Fatalf("ExportRaw() error = %v", err)
	}

	if _, err := m.ImportRaw(ctx, `{"users": [broken`); err == nil {
		t.Fatal("ImportRaw() accepted malformed text")
	}

	after, err := m.ExportRaw(ctx)
	if err != nil {
		t.Fatalf("ExportRaw() error = %v", err)
	}
	if before != after {
		t.Error("failed import must leave the stored text untouched")
	}
}

func TestAddFacultyAppendsExactlyOne(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	before, _ := m.Load(ctx)
	f, err := m.AddFaculty(ctx, "كلية الحقوق")
	if err != nil {
		t.Fatalf("AddFaculty() error = %v", err)
	}

	after, _ := m.Load(ctx)
	if len(after.Faculties) != len(before.Faculties)+1 {
		t.Fatalf("Faculties = %d, want %d", len(after.Faculties), len(before.Faculties)+1)
	}
	last := after.Faculties[len(after.Faculties)-1]
	if last.ID != f.ID || last.Name != "كلية الحقوق" {
		t.Errorf("appended faculty = %+v, want id %s", last, f.ID)
	}
	for _, prev := range before.Faculties {
		if prev.ID == f.ID {
			t.Errorf("new id %s collides with an existing record", f.ID)
		}
	}
	// prior records unchanged, in order
	for i, prev := range before.Faculties {
		if after.Faculties[i] != prev {
			t.Errorf("prior record %d changed: %+v != %+v", i, after.Faculties[i], prev)
		}
	}
}

func TestAddFileStampsFixedFields(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	f, err := m.AddFile(ctx, NewFile{
		Name:      "ملخص خوارزميات",
		SubjectID: "s1",
		Category:  domain.CategorySummary,
		URL:       "https://drive.example.com/doc",
	})
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if f.Type != domain.FileLinkType || f.Size != domain.FileLinkSize {
		t.Errorf("stamped type/size = %q/%q, want %q/%q", f.Type, f.Size, domain.FileLinkType, domain.FileLinkSize)
	}
	if f.UploadedAt == "" {
		t.Error("UploadedAt should be stamped")
	}
	if !strings.HasPrefix(f.ID, "file") {
		t.Errorf("file id %q missing prefix", f.ID)
	}

	c, _ := m.Load(ctx)
	if got := c.FileByID(f.ID); got == nil || !strings.HasPrefix(got.URL, "http") {
		t.Error("persisted file must exist with an http url")
	}
}

func TestAddFileRejectsBadURL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "ftp scheme", url: "ftp://example.com/doc"},
		{name: "uppercase prefix", url: "HTTP://example.com/doc"}, // prefix check is case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AddFile(ctx, NewFile{Name: "x", SubjectID: "s1", Category: domain.CategoryBook, URL: tt.url})
			if !errors.Is(err, ErrURLScheme) {
				t.Errorf("AddFile() error = %v, want ErrURLScheme", err)
			}
		})
	}

	c, _ := m.Load(ctx)
	if len(c.Files) != 0 {
		t.Error("rejected adds must not mutate the files collection")
	}
}

func TestDeleteFileUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	f, err := m.AddFile(ctx, NewFile{Name: "x", SubjectID: "s1", Category: domain.CategoryBook, URL: "https://x"})
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}

	if err := m.DeleteFile(ctx, "no-such-id"); err != nil {
		t.Fatalf("DeleteFile(unknown) error = %v, want nil", err)
	}
	c, _ := m.Load(ctx)
	if len(c.Files) != 1 {
		t.Errorf("Files = %d after no-op delete, want 1", len(c.Files))
	}

	if err := m.DeleteFile(ctx, f.ID); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	c, _ = m.Load(ctx)
	if len(c.Files) != 0 {
		t.Errorf("Files = %d after delete, want 0", len(c.Files))
	}
}

func TestAddUserEnforcesUniqueUsername(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	u, err := m.AddUser(ctx, "طالب", "student1", "pw")
	if err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if u.Role != domain.RoleStudent {
		t.Errorf("registered role = %q, want student", u.Role)
	}

	if _, err := m.AddUser(ctx, "Someone Else", "student1", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate AddUser() error = %v, want ErrUsernameTaken", err)
	}
	// seeded admin username is taken too
	if _, err := m.AddUser(ctx, "x", "abod", "x"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("AddUser(abod) error = %v, want ErrUsernameTaken", err)
	}
}

func TestSessionSlotLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	u := &domain.User{ID: "1", Username: "abod", Role: domain.RoleAdmin}
	if err := m.SaveSession(ctx, "tok", u); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := m.GetSession(ctx, "tok")
	if err != nil || got == nil || got.Username != "abod" {
		t.Fatalf("GetSession() = %+v, %v, want the stored identity", got, err)
	}

	if got, _ := m.GetSession(ctx, "other"); got != nil {
		t.Error("unknown token should yield nil identity")
	}

	if err := m.DeleteSession(ctx, "tok"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if got, _ := m.GetSession(ctx, "tok"); got != nil {
		t.Error("deleted token should yield nil identity")
	}
}
