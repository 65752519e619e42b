package domain

// BrowsePath is the ordered hierarchy path taken from the request URL.
// Any segment may be empty; an id that resolves to nothing is not an error.
type BrowsePath struct {
	FacultyID string
	MajorID   string
	SubjectID string
}

// Level is the depth the browsing view renders at. Deepest supplied segment
// wins: a subject id always yields the file list, even when the subject
// itself does not resolve.
type Level int

const (
	LevelHome Level = iota
	LevelFaculty
	LevelMajor
	LevelSubject
)

func (l Level) String() string {
	switch l {
	case LevelFaculty:
		return "faculty"
	case LevelMajor:
		return "major"
	case LevelSubject:
		return "subject"
	default:
		return "home"
	}
}

// Resolution is everything a browsing view needs: the matched hierarchy
// nodes (nil when absent or not supplied) and the child collections.
type Resolution struct {
	Path BrowsePath

	Faculty *Faculty
	Major   *Major
	Subject *Subject

	Faculties []Faculty  // full list, for the home view
	Majors    []Major    // majors of Path.FacultyID
	Subjects  []Subject  // subjects of Path.MajorID
	Files     []FileLink // files of Path.SubjectID
}

// Level returns the deepest level the path reaches.
func (r *Resolution) Level() Level {
	switch {
	case r.Path.SubjectID != "":
		return LevelSubject
	case r.Path.MajorID != "":
		return LevelMajor
	case r.Path.FacultyID != "":
		return LevelFaculty
	default:
		return LevelHome
	}
}

// Resolve walks the three-level hierarchy by plain id filtering. Dangling
// references produce empty child sets and nil nodes, never a failure.
func Resolve(c *Catalog, path BrowsePath) *Resolution {
	r := &Resolution{
		Path:      path,
		Faculties: c.Faculties,
		Majors:    []Major{},
		Subjects:  []Subject{},
		Files:     []FileLink{},
	}

	for i := range c.Faculties {
		if c.Faculties[i].ID == path.FacultyID {
			r.Faculty = &c.Faculties[i]
			break
		}
	}
	if path.FacultyID != "" {
		for _, m := range c.Majors {
			if m.FacultyID == path.FacultyID {
				r.Majors = append(r.Majors, m)
			}
		}
	}

	for i := range c.Majors {
		if c.Majors[i].ID == path.MajorID {
			r.Major = &c.Majors[i]
			break
		}
	}
	if path.MajorID != "" {
		for _, s := range c.Subjects {
			if s.MajorID == path.MajorID {
				r.Subjects = append(r.Subjects, s)
			}
		}
	}

	for i := range c.Subjects {
		if c.Subjects[i].ID == path.SubjectID {
			r.Subject = &c.Subjects[i]
			break
		}
	}
	if path.SubjectID != "" {
		for _, f := range c.Files {
			if f.SubjectID == path.SubjectID {
				r.Files = append(r.Files, f)
			}
		}
	}

	return r
}
