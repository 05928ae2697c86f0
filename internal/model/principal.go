package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool      { return p.Role == "ADMIN" }
func (p Principal) IsDispatcher() bool { return p.Role == "DISPATCHER" }
func (p Principal) IsTechnician() bool { return p.Role == "TECHNICIAN" }
