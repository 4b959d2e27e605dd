package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Active       bool      `json:"active"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleMember
}

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type UpdateProfileRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type Claims struct {
	UserID    string
	UserName  string
	UserEmail string
	UserRole  UserRole
	jwt.RegisteredClaims
}
