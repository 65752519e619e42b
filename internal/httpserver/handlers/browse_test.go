package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/index"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
	"github.com/abodsh/edufiles/internal/store"
)

func fileFixture(subjectID string) store.NewFile {
	return store.NewFile{
		Name:      "ملخص المحاضرة الأولى",
		SubjectID: subjectID,
		Category:  domain.CategorySummary,
		URL:       "https://example.com/lecture1.pdf",
	}
}

func browseVia(t *testing.T, h http.HandlerFunc, pattern, path string, u *domain.User) browseResponse {
	t.Helper()

	r := chi.NewRouter()
	r.Get(pattern, h)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if u != nil {
		req = req.WithContext(session.WithUser(context.Background(), u))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body %s", rec.Code, rec.Body)
	}
	var out browseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestHomeListsFaculties(t *testing.T) {
	d := testDeps(t)

	out := browseVia(t, Home(d), "/", "/", nil)
	if out.Level != "home" {
		t.Errorf("level: %q", out.Level)
	}
	if len(out.Faculties) != 3 {
		t.Errorf("faculties: got %d, want 3", len(out.Faculties))
	}
}

func TestBrowseDanglingIDKeepsEmptyLabel(t *testing.T) {
	d := testDeps(t)

	out := browseVia(t, BrowseFaculty(d), "/faculty/{facultyID}", "/faculty/nope", nil)
	if out.Level != "faculty" {
		t.Errorf("level: %q", out.Level)
	}
	if out.Breadcrumb.FacultyID != "nope" {
		t.Errorf("breadcrumb id: %q", out.Breadcrumb.FacultyID)
	}
	if out.Breadcrumb.FacultyName != "" {
		t.Errorf("dangling id should have no label, got %q", out.Breadcrumb.FacultyName)
	}
	if len(out.Majors) != 0 {
		t.Errorf("majors of unknown faculty: got %d, want 0", len(out.Majors))
	}
}

func TestBrowseAlwaysRendersArrays(t *testing.T) {
	mem := store.NewMemory(func() *domain.Catalog {
		return &domain.Catalog{
			Users: []domain.User{
				{ID: "1", Name: "المدير العام", Username: "abod", Role: domain.RoleAdmin, Password: "123"},
			},
			Faculties: []domain.Faculty{},
			Majors:    []domain.Major{},
			Subjects:  []domain.Subject{},
			Files:     []domain.FileLink{},
		}
	})
	d := deps.Deps{
		Logger:   logger.New("error", false),
		Catalog:  mem,
		Sessions: mem,
		Snapshot: index.NewSnapshot(),
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Home(d)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body %s", rec.Code, rec.Body)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"faculties", "majors", "subjects", "files"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("%s key missing from the response", key)
			continue
		}
		if string(v) == "null" {
			t.Errorf("%s is null, want an array", key)
		}
	}
}

func TestBrowseSubjectVisibilityFollowsLogin(t *testing.T) {
	d := testDeps(t)

	// m3 holds s1 and s2 in the seed document; give s1 a file first.
	if _, err := d.Catalog.AddFile(context.Background(), fileFixture("s1")); err != nil {
		t.Fatal(err)
	}

	path := "/faculty/f3/major/m3/subject/s1"
	pattern := "/faculty/{facultyID}/major/{majorID}/subject/{subjectID}"

	anon := browseVia(t, BrowseSubject(d), pattern, path, nil)
	if len(anon.Files) != 1 || anon.Files[0].Downloadable || anon.Files[0].URL != "" {
		t.Errorf("anonymous view: %+v", anon.Files)
	}

	student := &domain.User{ID: "2", Username: "s", Role: domain.RoleStudent}
	seen := browseVia(t, BrowseSubject(d), pattern, path, student)
	if len(seen.Files) != 1 || !seen.Files[0].Downloadable || seen.Files[0].URL == "" {
		t.Errorf("signed-in view: %+v", seen.Files)
	}
	if seen.Breadcrumb.SubjectName == "" {
		t.Error("resolved subject should carry its label")
	}
}
