package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
)

// currentCatalog serves reads from the refreshed snapshot and falls back
// to a direct load before the first refresh has landed.
func currentCatalog(d deps.Deps, r *http.Request) (*domain.Catalog, error) {
	if c, ok := d.Snapshot.Catalog(); ok {
		return c, nil
	}
	return d.Catalog.Load(r.Context())
}

// syncSnapshot re-reads the stored document into the snapshot right after
// a mutation, so this process serves its own writes on the next read.
// Other processes catch up on their polling interval.
func syncSnapshot(d deps.Deps, r *http.Request) {
	c, err := d.Catalog.Load(r.Context())
	if err != nil {
		d.Logger.Warn("post-write snapshot refresh failed", logger.Error(err))
		return
	}
	d.Snapshot.Update(c)
}

type breadcrumb struct {
	FacultyID   string `json:"facultyId,omitempty"`
	FacultyName string `json:"facultyName,omitempty"`
	MajorID     string `json:"majorId,omitempty"`
	MajorName   string `json:"majorName,omitempty"`
	SubjectID   string `json:"subjectId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
}

type fileCard struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     domain.Category `json:"category"`
	Type         string          `json:"type"`
	Size         string          `json:"size"`
	UploadedAt   string          `json:"uploadedAt"`
	URL          string          `json:"url,omitempty"`
	Downloadable bool            `json:"downloadable"`
}

type browseResponse struct {
	Level      string           `json:"level"`
	Breadcrumb breadcrumb       `json:"breadcrumb"`
	Faculties  []domain.Faculty `json:"faculties"`
	Majors     []domain.Major   `json:"majors"`
	Subjects   []domain.Subject `json:"subjects"`
	Files      []fileCard       `json:"files"`
}

func browse(d deps.Deps, w http.ResponseWriter, r *http.Request, path domain.BrowsePath) {
	c, err := currentCatalog(d, r)
	if err != nil {
		d.Logger.Error("catalog load failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	res := domain.Resolve(c, path)
	loggedIn := session.UserFrom(r.Context()) != nil

	// Every collection stays a JSON array, never null or absent: the view
	// for the current level is filled in below, the others stay empty.
	resp := browseResponse{
		Level:     res.Level().String(),
		Faculties: []domain.Faculty{},
		Majors:    []domain.Major{},
		Subjects:  []domain.Subject{},
		Files:     []fileCard{},
	}

	// Dangling ids keep their id in the breadcrumb with an empty label.
	resp.Breadcrumb.FacultyID = path.FacultyID
	if res.Faculty != nil {
		resp.Breadcrumb.FacultyName = res.Faculty.Name
	}
	resp.Breadcrumb.MajorID = path.MajorID
	if res.Major != nil {
		resp.Breadcrumb.MajorName = res.Major.Name
	}
	resp.Breadcrumb.SubjectID = path.SubjectID
	if res.Subject != nil {
		resp.Breadcrumb.SubjectName = res.Subject.Name
	}

	switch res.Level() {
	case domain.LevelHome:
		if res.Faculties != nil {
			resp.Faculties = res.Faculties
		}
	case domain.LevelFaculty:
		resp.Majors = res.Majors
	case domain.LevelMajor:
		resp.Subjects = res.Subjects
	case domain.LevelSubject:
		resp.Files = make([]fileCard, 0, len(res.Files))
		for _, f := range res.Files {
			card := fileCard{
				ID:           f.ID,
				Name:         f.Name,
				Category:     f.Category,
				Type:         f.Type,
				Size:         f.Size,
				UploadedAt:   f.UploadedAt,
				Downloadable: loggedIn,
			}
			if loggedIn {
				card.URL = f.URL
			}
			resp.Files = append(resp.Files, card)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Home lists all faculties.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browse(d, w, r, domain.BrowsePath{})
	}
}

// BrowseFaculty lists the majors of one faculty.
func BrowseFaculty(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browse(d, w, r, domain.BrowsePath{
			FacultyID: chi.URLParam(r, "facultyID"),
		})
	}
}

// BrowseMajor lists the subjects of one major.
func BrowseMajor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browse(d, w, r, domain.BrowsePath{
			FacultyID: chi.URLParam(r, "facultyID"),
			MajorID:   chi.URLParam(r, "majorID"),
		})
	}
}

// BrowseSubject lists the file cards of one subject.
func BrowseSubject(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browse(d, w, r, domain.BrowsePath{
			FacultyID: chi.URLParam(r, "facultyID"),
			MajorID:   chi.URLParam(r, "majorID"),
			SubjectID: chi.URLParam(r, "subjectID"),
		})
	}
}
