package models

import (
	"github.com/google/uuid"
)

// TaskStatus is a workflow stage. The closed set of stages is configurable
// (see the workflow package); these are the defaults the board ships with.
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority is the ordinal priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task represents a board task within a project. OrderIndex keeps a stable
// relative ordering inside a status column; it is assigned append-at-end on
// creation.
type Task struct {
	BaseModel
	ProjectID   uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	Title       string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(50);not null;default:'backlog';index"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	OrderIndex  int          `json:"order_index" gorm:"not null;default:0"`

	// Relationships
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignee *User     `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
