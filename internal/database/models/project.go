package models

import (
	"github.com/google/uuid"
)

// Project represents a project owned by exactly one team. The team
// reference is immutable once set.
type Project struct {
	BaseModel
	TeamID      uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name        string    `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"type:text"`

	// Relationships
	Team  *Team  `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
