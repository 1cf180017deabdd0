// Package models mirrors the JSON records the backend returns.
package models

import "time"

type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    int64     `json:"role_id"`
	Role      *RoleRef  `json:"role,omitempty"`
	IsActive  bool      `json:"is_active"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	UsersCount  int          `json:"users_count"`
	IsSystem    bool         `json:"is_system"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// LoginResult is the auth provider's answer to a credential check.
type LoginResult struct {
	Token       string   `json:"token"`
	User        User     `json:"user"`
	Permissions []string `json:"permissions"`
}

type Me struct {
	User        User     `json:"user"`
	Permissions []string `json:"permissions"`
}

type RolePermissions struct {
	PermissionIDs []int64 `json:"permission_ids"`
}
