package seedfile

// Config is the shape of the optional seed YAML file. The hierarchy is
// nested the way an administrator thinks about it; the mapper flattens it
// into the document's flat collections and mints the ids.
type Config struct {
	Users     []UserProps    `yaml:"users"`
	Faculties []FacultyProps `yaml:"faculties"`
}

type UserProps struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role,omitempty"` // "admin" or "student", default student
}

type FacultyProps struct {
	Name   string       `yaml:"name"`
	Majors []MajorProps `yaml:"majors,omitempty"`
}

type MajorProps struct {
	Name     string   `yaml:"name"`
	Subjects []string `yaml:"subjects,omitempty"`
}
