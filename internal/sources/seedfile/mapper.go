package seedfile

import (
	"fmt"
	"strconv"

	"github.com/abodsh/edufiles/internal/domain"
)

// Mapper flattens a seed Config into a catalog document. Ids follow the
// same scheme as the built-in seed: positional "f1"/"m1"/"s1" tags, user
// ids counted from 1.
type Mapper struct{}

// NewMapper creates a mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCatalog converts a Config into the first-run document.
func (m *Mapper) MapCatalog(cfg *Config) (*domain.Catalog, error) {
	c := &domain.Catalog{
		Users:     []domain.User{},
		Faculties: []domain.Faculty{},
		Majors:    []domain.Major{},
		Subjects:  []domain.Subject{},
		Files:     []domain.FileLink{},
	}

	for i, u := range cfg.Users {
		if u.Username == "" {
			return nil, fmt.Errorf("users[%d]: username is required", i)
		}
		role := domain.RoleStudent
		switch u.Role {
		case "", string(domain.RoleStudent):
		case string(domain.RoleAdmin):
			role = domain.RoleAdmin
		default:
			return nil, fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
		c.Users = append(c.Users, domain.User{
			ID:       strconv.Itoa(i + 1),
			Name:     u.Name,
			Username: u.Username,
			Role:     role,
			Password: u.Password,
		})
	}

	majorN, subjectN := 0, 0
	for i, f := range cfg.Faculties {
		if f.Name == "" {
			return nil, fmt.Errorf("faculties[%d]: name is required", i)
		}
		facultyID := "f" + strconv.Itoa(i+1)
		c.Faculties = append(c.Faculties, domain.Faculty{ID: facultyID, Name: f.Name})

		for j, mj := range f.Majors {
			if mj.Name == "" {
				return nil, fmt.Errorf("faculties[%d].majors[%d]: name is required", i, j)
			}
			majorN++
			majorID := "m" + strconv.Itoa(majorN)
			c.Majors = append(c.Majors, domain.Major{ID: majorID, FacultyID: facultyID, Name: mj.Name})

			for k, subj := range mj.Subjects {
				if subj == "" {
					return nil, fmt.Errorf("faculties[%d].majors[%d].subjects[%d]: empty name", i, j, k)
				}
				subjectN++
				c.Subjects = append(c.Subjects, domain.Subject{
					ID:      "s" + strconv.Itoa(subjectN),
					MajorID: majorID,
					Name:    subj,
				})
			}
		}
	}

	if len(c.Users) == 0 && len(c.Faculties) == 0 {
		return nil, fmt.Errorf("seed file defines no users and no faculties")
	}

	return c, nil
}
