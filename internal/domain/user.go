package domain

import "strings"

// User represents a registered account. Emails are unique and the password is
// stored only as a bcrypt hash, never plaintext.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Password       string `json:"-"` // Plaintext, held only between registration and hashing
	HashedPassword string `json:"-"` // Never expose the hash in JSON
	IsActive       bool   `json:"is_active"`
}

// NewUser creates a new active User with the given email and plaintext
// password. The caller is responsible for hashing the password before the
// user is stored. Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	user := &User{
		Email:    email,
		Password: password,
		IsActive: true,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.Password == "" {
		// Existing rows carry only the hash.
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
		return nil
	}
	if len(u.Password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

// validEmail performs a minimal structural check: one @ with a dotted,
// non-empty domain. Request payloads get the stricter validator tag check.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
