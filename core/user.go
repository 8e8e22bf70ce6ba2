package core

// User is a registered library member.
type User struct {
	ID      UserIDString `json:"id"`
	Name    string       `json:"name"`
	Contact string       `json:"contact"`
}

// BuildUser creates a new User.
func BuildUser(id UserIDString, name string, contact string) User {
	return User{
		ID:      id,
		Name:    name,
		Contact: contact,
	}
}
