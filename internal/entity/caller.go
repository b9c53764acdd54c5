package entity

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// Caller is the authenticated identity attached to a request. It is produced
// by the identity middleware from trusted headers and never re-derived here.
type Caller struct {
	Id   uuid.UUID
	Role Role
}
