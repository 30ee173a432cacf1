package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Permission is a named capability gating one class of operation.
type Permission string

const (
	PermRegister  Permission = "register"
	PermDashboard Permission = "dashboard"
	PermViewAll   Permission = "view_all"
	PermDelete    Permission = "delete"
	PermLogOut    Permission = "log_out"
)

// AllPermissions is the full capability set, granted to seeded admins.
var AllPermissions = PermissionSet{
	PermRegister, PermDashboard, PermViewAll, PermDelete, PermLogOut,
}

// PermissionSet is a proper set-of-enum type with exact-match membership —
// no comma-joined strings, no wildcards, no hierarchy.
type PermissionSet []Permission

// Has reports whether p is a member of the set.
func (s PermissionSet) Has(p Permission) bool {
	for _, v := range s {
		if v == p {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings for embedding in token claims.
func (s PermissionSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

// ParsePermissions filters raw tags down to known permissions, dropping
// anything outside the enumeration.
func ParsePermissions(raw []string) PermissionSet {
	var set PermissionSet
	for _, r := range raw {
		p := Permission(r)
		switch p {
		case PermRegister, PermDashboard, PermViewAll, PermDelete, PermLogOut:
			if !set.Has(p) {
				set = append(set, p)
			}
		}
	}
	return set
}

// User is an authenticated principal. Credentials are bcrypt-hashed.
type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string        `gorm:"uniqueIndex;not null"`
	PasswordHash string        `gorm:"not null"`
	Role         string        `gorm:"type:varchar(20);not null;default:'user'"`
	Permissions  PermissionSet `gorm:"serializer:json"`
	Active       bool          `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
