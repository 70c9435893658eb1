package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamRole represents the role a user holds within a team
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// IsValid checks if the TeamRole is valid
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	}
	return false
}

// Rank returns the ordinal rank of the role. Lower rank means more
// authority: owner=0, admin=1, member=2. Used both for authorization
// gating and for stable member-list ordering.
func (r TeamRole) Rank() int {
	switch r {
	case TeamRoleOwner:
		return 0
	case TeamRoleAdmin:
		return 1
	default:
		return 2
	}
}

// AtLeast reports whether the role carries at least the authority of min.
func (r TeamRole) AtLeast(min TeamRole) bool {
	return r.Rank() <= min.Rank()
}

// TeamMembership is the join entity between User and Team. The composite
// unique index on (team_id, user_id) is the authority for duplicate
// detection: two concurrent joins for the same pair cannot both succeed.
type TeamMembership struct {
	BaseModel
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_user" validate:"required"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_user" validate:"required"`
	Role     TeamRole  `json:"role" gorm:"type:varchar(20);not null;default:'member'" validate:"required"`
	JoinedAt time.Time `json:"joined_at" gorm:"not null"`

	// Relationships
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TeamMembership
func (TeamMembership) TableName() string {
	return "team_memberships"
}
