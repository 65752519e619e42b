package domain

// Authenticate performs the credential check: a linear scan for an exact
// match on username and cleartext password. It reports only success or
// failure - callers must not reveal which of the two fields was wrong.
func Authenticate(users []User, username, password string) (*User, bool) {
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], true
		}
	}
	return nil, false
}
