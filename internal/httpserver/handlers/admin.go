package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/store"
)

const maxImportBytes = 8 << 20

type adminOverviewResponse struct {
	Users       int               `json:"users"`
	Faculties   int               `json:"faculties"`
	Majors      int               `json:"majors"`
	Subjects    int               `json:"subjects"`
	Files       int               `json:"files"`
	RecentFiles []domain.FileLink `json:"recentFiles"`
}

// AdminOverview reports catalog counts and the most recently added files.
func AdminOverview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := currentCatalog(d, r)
		if err != nil {
			d.Logger.Error("catalog load failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}

		recent := make([]domain.FileLink, 0, 5)
		for i := len(c.Files) - 1; i >= 0 && len(recent) < 5; i-- {
			recent = append(recent, c.Files[i])
		}

		writeJSON(w, http.StatusOK, adminOverviewResponse{
			Users:       len(c.Users),
			Faculties:   len(c.Faculties),
			Majors:      len(c.Majors),
			Subjects:    len(c.Subjects),
			Files:       len(c.Files),
			RecentFiles: recent,
		})
	}
}

type createFacultyRequest struct {
	Name string `json:"name" validate:"required"`
}

func CreateFaculty(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFacultyRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		f, err := d.Catalog.AddFaculty(r.Context(), req.Name)
		if err != nil {
			d.Logger.Error("add faculty failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		syncSnapshot(d, r)
		writeJSON(w, http.StatusCreated, f)
	}
}

type createMajorRequest struct {
	FacultyID string `json:"facultyId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func CreateMajor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMajorRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		m, err := d.Catalog.AddMajor(r.Context(), req.FacultyID, req.Name)
		if err != nil {
			d.Logger.Error("add major failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		syncSnapshot(d, r)
		writeJSON(w, http.StatusCreated, m)
	}
}

type createSubjectRequest struct {
	MajorID string `json:"majorId" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

func CreateSubject(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubjectRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		s, err := d.Catalog.AddSubject(r.Context(), req.MajorID, req.Name)
		if err != nil {
			d.Logger.Error("add subject failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		syncSnapshot(d, r)
		writeJSON(w, http.StatusCreated, s)
	}
}

type createFileRequest struct {
	Name      string `json:"name" validate:"required"`
	SubjectID string `json:"subjectId" validate:"required"`
	Category  string `json:"category" validate:"required,oneof=ملخص ملزمة كتاب مرجع"`
	URL       string `json:"url" validate:"required,startswith=http"`
}

func CreateFile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFileRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		f, err := d.Catalog.AddFile(r.Context(), store.NewFile{
			Name:      req.Name,
			SubjectID: req.SubjectID,
			Category:  domain.Category(req.Category),
			URL:       req.URL,
		})
		if err != nil {
			if errors.Is(err, store.ErrURLScheme) {
				writeError(w, http.StatusBadRequest, store.ErrURLScheme.Error())
				return
			}
			d.Logger.Error("add file failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		syncSnapshot(d, r)
		writeJSON(w, http.StatusCreated, f)
	}
}

// DeleteFile removes a file link. Unknown ids succeed silently, matching
// delete-by-filter semantics.
func DeleteFile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.DeleteFile(r.Context(), chi.URLParam(r, "fileID")); err != nil {
			d.Logger.Error("delete file failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		syncSnapshot(d, r)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Export streams the stored document verbatim as a dated attachment.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Catalog.ExportRaw(r.Context())
		if err != nil {
			d.Logger.Error("export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}

		name := fmt.Sprintf("edufiles-backup-%s.json", d.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = io.WriteString(w, raw)
	}
}

// Import replaces the whole catalog with the uploaded document. A document
// that fails the validating decode leaves the stored one untouched.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable request body")
			return
		}

		c, err := d.Catalog.ImportRaw(r.Context(), string(body))
		if err != nil {
			var derr *domain.DecodeError
			if errors.As(err, &derr) {
				writeError(w, http.StatusBadRequest, derr.Reason)
				return
			}
			d.Logger.Error("import failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}

		d.Snapshot.Update(c)
		writeJSON(w, http.StatusOK, adminOverviewResponse{
			Users:     len(c.Users),
			Faculties: len(c.Faculties),
			Majors:    len(c.Majors),
			Subjects:  len(c.Subjects),
			Files:     len(c.Files),
		})
	}
}

// Refresh triggers an out-of-band snapshot reload.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RefreshTrigger == nil {
			writeError(w, http.StatusServiceUnavailable, "refresher not running")
			return
		}
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual snapshot refresh triggered",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("snapshot refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "refresh already in progress")
		}
	}
}
