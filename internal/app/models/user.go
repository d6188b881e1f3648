package models

const (
	UserRoleAdmin  = "admin"
	UserRoleEditor = "editor"
)

type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
}

func NewUser() User {
	return User{Role: UserRoleAdmin}
}

// Normalize keeps only what the edit form shows. The remote never returns a usable password.
func (u *User) Normalize() {
	u.Password = ""
	if u.Role == "" {
		u.Role = UserRoleAdmin
	}
}

// Payload leaves the password out when it is empty so an edit does not reset it.
func (u User) Payload() User {
	payload := u
	payload.ID = ""
	return payload
}
