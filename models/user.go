package models

import "time"

// UserRole соответствует ENUM user_role в БД.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleOrganizer UserRole = "ORGANIZER"
	RoleUser      UserRole = "USER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
