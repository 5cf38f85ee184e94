package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	// Never serialized out; only the auth service reads it.
	PasswordHash string `json:"-"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsAuthor reports whether the user authored the given record. A nil
// user (no session) is never an author.
func (u *User) IsAuthor(authorID string) bool {
	return u != nil && authorID != "" && u.ID == authorID
}
