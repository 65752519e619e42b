package domain

// Seed returns the document written on first access when no catalog exists
// yet: one admin account, three faculties, three majors, two subjects and
// no files. Callers get a fresh copy; mutating it never touches the
// template.
func Seed() *Catalog {
	return &Catalog{
		Users: []User{
			{ID: "1", Name: "المدير العام", Username: "abod", Role: RoleAdmin, Password: "123"},
		},
		Faculties: []Faculty{
			{ID: "f1", Name: "كلية الهندسة"},
			{ID: "f2", Name: "كلية الطب"},
			{ID: "f3", Name: "كلية الحاسبات"},
		},
		Majors: []Major{
			{ID: "m1", FacultyID: "f1", Name: "الهندسة المدنية"},
			{ID: "m2", FacultyID: "f1", Name: "الهندسة المعمارية"},
			{ID: "m3", FacultyID: "f3", Name: "علوم الحاسوب"},
		},
		Subjects: []Subject{
			{ID: "s1", MajorID: "m3", Name: "خوارزميات"},
			{ID: "s2", MajorID: "m3", Name: "قواعد بيانات"},
		},
		Files: []FileLink{},
	}
}
