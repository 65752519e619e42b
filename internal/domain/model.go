package domain

// Role classifies a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Category classifies a file link. The values are the Arabic labels the
// catalog has always used; they are part of the persisted document format.
type Category string

const (
	CategorySummary   Category = "ملخص"
	CategoryHandout   Category = "ملزمة"
	CategoryBook      Category = "كتاب"
	CategoryReference Category = "مرجع"
)

// Categories lists every valid file-link category, in display order.
var Categories = []Category{CategorySummary, CategoryHandout, CategoryBook, CategoryReference}

// KnownCategory reports whether c is one of the defined categories.
func KnownCategory(c Category) bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// User is an account record. Passwords are stored and compared in
// cleartext; that is a documented property of the system, not an oversight
// to patch here.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Faculty is a top-level catalog node.
type Faculty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Major belongs to a faculty. FacultyID is advisory: nothing guarantees the
// parent still exists, and the resolver treats a dangling reference as
// "parent not found".
type Major struct {
	ID        string `json:"id"`
	FacultyID string `json:"facultyId"`
	Name      string `json:"name"`
}

// Subject belongs to a major.
type Subject struct {
	ID      string `json:"id"`
	MajorID string `json:"majorId"`
	Name    string `json:"name"`
}

// FileLink is a named pointer to an externally hosted document attached to
// exactly one subject. No file bytes are ever stored; URL must lexically
// start with "http".
type FileLink struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SubjectID  string   `json:"subjectId"`
	Category   Category `json:"category"`
	Type       string   `json:"type"`
	Size       string   `json:"size"`
	UploadedAt string   `json:"uploadedAt"`
	URL        string   `json:"url"`
}

// FileLinkType and FileLinkSize are the fixed values stamped on every new
// file link: the catalog only holds external links, so the type is the
// Arabic word for "link" and the size is unknown.
const (
	FileLinkType = "رابط"
	FileLinkSize = "-- MB"
)

// Catalog is the aggregate document: every record the application persists,
// read and written wholesale under a single storage key. Slices are
// insertion-ordered and that order is what browsing displays.
type Catalog struct {
	Users     []User     `json:"users"`
	Faculties []Faculty  `json:"faculties"`
	Majors    []Major    `json:"majors"`
	Subjects  []Subject  `json:"subjects"`
	Files     []FileLink `json:"files"`
}

// FileByID returns the file link with the given id, or nil.
func (c *Catalog) FileByID(id string) *FileLink {
	for i := range c.Files {
		if c.Files[i].ID == id {
			return &c.Files[i]
		}
	}
	return nil
}

// HasUsername reports whether any user already holds the given username.
func (c *Catalog) HasUsername(username string) bool {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return true
		}
	}
	return false
}
