package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError reports why a stored or imported document was rejected.
// Decoding fails closed: a malformed document never reaches the rest of the
// application.
type DecodeError struct {
	Reason string
	Err    error // underlying JSON error, when there is one
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid catalog document: %s: %v", e.Reason, e.Err)
	}
	return "invalid catalog document: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeCatalog parses data as a catalog document and checks the field
// values the application relies on. It is used both for ordinary loads and
// for admin imports, so corrupt data is rejected with a structured error in
// both cases instead of propagating into the domain.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &DecodeError{Reason: "not a valid JSON document", Err: err}
	}

	for i, u := range c.Users {
		if u.ID == "" || u.Username == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("users[%d]: missing id or username", i)}
		}
		if u.Role != RoleAdmin && u.Role != RoleStudent {
			return nil, &DecodeError{Reason: fmt.Sprintf("users[%d]: unknown role %q", i, u.Role)}
		}
	}
	for i, f := range c.Faculties {
		if f.ID == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("faculties[%d]: missing id", i)}
		}
	}
	for i, m := range c.Majors {
		if m.ID == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("majors[%d]: missing id", i)}
		}
	}
	for i, s := range c.Subjects {
		if s.ID == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("subjects[%d]: missing id", i)}
		}
	}
	for i, f := range c.Files {
		if f.ID == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf("files[%d]: missing id", i)}
		}
		if !KnownCategory(f.Category) {
			return nil, &DecodeError{Reason: fmt.Sprintf("files[%d]: unknown category %q", i, f.Category)}
		}
		if !strings.HasPrefix(f.URL, "http") {
			return nil, &DecodeError{Reason: fmt.Sprintf("files[%d]: url does not start with http", i)}
		}
	}

	// Nil slices and empty slices are interchangeable in storage, but the
	// rest of the code appends and serializes these, so normalize once here.
	if c.Users == nil {
		c.Users = []User{}
	}
	if c.Faculties == nil {
		c.Faculties = []Faculty{}
	}
	if c.Majors == nil {
		c.Majors = []Major{}
	}
	if c.Subjects == nil {
		c.Subjects = []Subject{}
	}
	if c.Files == nil {
		c.Files = []FileLink{}
	}

	return &c, nil
}
