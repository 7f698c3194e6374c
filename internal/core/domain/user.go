package domain

import (
	"regexp"
	"strings"
	"time"
)

// Role is the privilege class carried by every account and every token.
type Role string

const (
	RoleMe       Role = "Me"
	RoleAdmin    Role = "Admin"
	RoleUser     Role = "User"
	RoleCustomer Role = "Customer"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMe, RoleAdmin, RoleUser, RoleCustomer:
		return true
	}
	return false
}

const (
	MinNameLength     = 2
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User models an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRef is the public projection of a user embedded in other documents.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Ref returns the populated reference for u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	UserID string
	Role   Role
}

// NormalizeEmail trims and lowercases an address before any lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail expects an already normalized address.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "is required")
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "must be a valid email")
	}
	return nil
}

// ValidateName checks a trimmed first or last name.
func ValidateName(field, name string) error {
	if name == "" {
		return NewValidationError(field, "is required")
	}
	if len([]rune(name)) < MinNameLength {
		return NewValidationError(field, "must be at least 2 characters")
	}
	return nil
}

func ValidatePassword(field, password string) error {
	if password == "" {
		return NewValidationError(field, "is required")
	}
	if len(password) < MinPasswordLength {
		return NewValidationError(field, "must be at least 6 characters")
	}
	return nil
}
