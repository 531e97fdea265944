package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleWriter UserRole = "writer"
)

type User struct {
	Meta
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Active    bool      `json:"active"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}
