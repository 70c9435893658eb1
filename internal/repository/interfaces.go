package repository

import (
	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	CreateWithOwner(team *models.Team) error
	GetByID(id uuid.UUID) (*models.Team, error)
	GetByCode(code string) (*models.Team, error)
	CodeExists(code string) (bool, error)
	GetTeamsForUser(userID uuid.UUID) ([]TeamWithMemberCount, error)
	GetAvailableTeams(userID uuid.UUID) ([]TeamWithMemberCount, error)
	GetMemberCount(teamID uuid.UUID) (int64, error)
}

// MembershipRepositoryInterface defines the interface for membership repository operations
type MembershipRepositoryInterface interface {
	Create(membership *models.TeamMembership) error
	GetByTeamAndUser(teamID, userID uuid.UUID) (*models.TeamMembership, error)
	ListByTeam(teamID uuid.UUID) ([]TeamMemberRow, error)
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetByTeamID(teamID uuid.UUID) ([]models.Project, error)
	GetForUser(userID uuid.UUID) ([]models.Project, error)
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	CreateAppend(task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetByProjectID(projectID uuid.UUID) ([]models.Task, error)
	Update(task *models.Task) error
	MoveToStatus(task *models.Task, status models.TaskStatus) error
	Delete(id uuid.UUID) error
}

// CommentRepositoryInterface defines the interface for comment repository operations
type CommentRepositoryInterface interface {
	Create(comment *models.Comment) error
	GetByTaskID(taskID uuid.UUID) ([]models.Comment, error)
}
