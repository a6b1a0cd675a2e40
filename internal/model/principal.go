package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleAnalyst UserRole = "ANALYST"
)

// Principal identifies the authenticated caller of a report run.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
