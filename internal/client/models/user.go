package models

import "strings"

// Role of a platform user. It decides which routes and menu items are reachable.
type Role string

const (
	RoleStudent      Role = "student"
	RoleParent       Role = "parent"
	RolePsychologist Role = "psychologist"
	RoleManager      Role = "manager"
)

var AllRoles = []Role{RoleStudent, RoleParent, RolePsychologist, RoleManager}

// ParseRole accepts any casing and reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RolePsychologist, RoleManager:
		return true
	}
	return false
}

type User struct {
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (u User) Validate() error {
	if err := required("user", "userId", u.UserID); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return invalid("user %s: unknown role %q", u.UserID, u.Role)
	}
	return nil
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Role        Role   `json:"role"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// Validate checks the form before it is sent; the server remains the
// authority on uniqueness and password policy.
func (r RegisterRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return invalid("register: email is not valid")
	}
	if len(r.Password) < 6 {
		return invalid("register: password must be at least 6 characters")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return invalid("register: full name is required")
	}
	if r.Role != RoleStudent && r.Role != RoleParent {
		return invalid("register: only students and parents can self-register")
	}
	return nil
}

type UpdateProfileRequest struct {
	FullName    string `json:"fullName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
