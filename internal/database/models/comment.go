package models

import (
	"github.com/google/uuid"
)

// Comment represents a comment on a task
type Comment struct {
	BaseModel
	TaskID   uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index" validate:"required"`
	AuthorID uuid.UUID `json:"author_id" gorm:"type:uuid;not null" validate:"required"`
	Body     string    `json:"body" gorm:"type:text;not null" validate:"required"`

	// Relationships
	Task   *Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
