package seedfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abodsh/edufiles/internal/domain"
)

const sampleSeed = `---
users:
  - name: المدير العام
    username: abod
    password: "123"
    role: admin
  - name: طالب تجريبي
    username: student
    password: pw
faculties:
  - name: كلية الهندسة
    majors:
      - name: الهندسة المدنية
        subjects:
          - إنشاءات
          - مساحة
      - name: الهندسة المعمارية
  - name: كلية الطب
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeSeed(t, sampleSeed))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Users) != 2 || len(cfg.Faculties) != 2 {
		t.Errorf("parsed %d users / %d faculties, want 2 / 2", len(cfg.Users), len(cfg.Faculties))
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/seed.yaml")
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	loader := NewLoader(writeSeed(t, "users: [unclosed"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

func TestMapCatalog(t *testing.T) {
	loader := NewLoader(writeSeed(t, sampleSeed))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	c, err := NewMapper().MapCatalog(cfg)
	if err != nil {
		t.Fatalf("MapCatalog() error = %v", err)
	}

	if len(c.Users) != 2 || c.Users[0].Role != domain.RoleAdmin || c.Users[1].Role != domain.RoleStudent {
		t.Errorf("mapped users = %+v, want admin then student", c.Users)
	}
	if c.Users[0].ID != "1" || c.Users[1].ID != "2" {
		t.Errorf("user ids = %s/%s, want 1/2", c.Users[0].ID, c.Users[1].ID)
	}

	if len(c.Faculties) != 2 || c.Faculties[0].ID != "f1" || c.Faculties[1].ID != "f2" {
		t.Fatalf("faculties = %+v, want f1/f2", c.Faculties)
	}
	if len(c.Majors) != 2 {
		t.Fatalf("majors = %d, want 2", len(c.Majors))
	}
	if c.Majors[0].FacultyID != "f1" || c.Majors[1].FacultyID != "f1" {
		t.Errorf("major parents = %s/%s, want f1/f1", c.Majors[0].FacultyID, c.Majors[1].FacultyID)
	}
	if len(c.Subjects) != 2 || c.Subjects[0].MajorID != "m1" || c.Subjects[1].MajorID != "m1" {
		t.Errorf("subjects = %+v, want two under m1", c.Subjects)
	}
	if len(c.Files) != 0 {
		t.Error("seed documents never carry files")
	}
}

func TestMapCatalogRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "empty config", cfg: &Config{}},
		{name: "user without username", cfg: &Config{Users: []UserProps{{Name: "x"}}}},
		{name: "unknown role", cfg: &Config{Users: []UserProps{{Username: "x", Role: "root"}}}},
		{name: "faculty without name", cfg: &Config{Faculties: []FacultyProps{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper().MapCatalog(tt.cfg); err == nil {
				t.Error("MapCatalog() accepted invalid config")
			}
		})
	}
}
