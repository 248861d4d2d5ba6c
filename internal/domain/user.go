package domain

import "time"

// UserRoles is the closed set of dashboard roles.
var UserRoles = []string{"admin", "staff"}

// User is a dashboard account. Passwords never pass through this struct;
// credential changes go through the dedicated auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Role  string `json:"role" form:"role"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// RecordID returns the backend-assigned identifier.
func (u User) RecordID() string { return u.ID }

// Normalized returns a copy ready for form binding.
func (u User) Normalized() User { return u }

// Validate checks the user against its schema.
func (u User) Validate() error {
	errs := FieldErrors{}
	requireName(u.Name, errs)
	if u.Email == "" {
		errs["email"] = "email is required"
	} else {
		checkEmail("email", u.Email, errs)
	}
	if u.Role == "" {
		errs["role"] = "role is required"
	} else if !contains(UserRoles, u.Role) {
		errs["role"] = u.Role + " is not a recognized role"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[User] = User{}
