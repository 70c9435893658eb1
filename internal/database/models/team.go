package models

import (
	"github.com/google/uuid"
)

// TeamCodeLength is the length of the shareable invite code generated for
// every team.
const TeamCodeLength = 6

// Team represents a team that owns projects and carries a shareable invite
// code. The creator reference is set at creation and never reassigned.
type Team struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:text"`
	TeamCode    string    `json:"team_code" gorm:"uniqueIndex:idx_teams_team_code;not null;size:10"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`

	// Relationships
	Creator  *User            `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Members  []TeamMembership `json:"members,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Projects []Project        `json:"projects,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
