package repository

import (
	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByTeamID retrieves all projects of a team, newest first
func (r *ProjectRepository) GetByTeamID(teamID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("team_id = ?", teamID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetForUser retrieves all projects across the teams the user is a member
// of, newest first.
func (r *ProjectRepository) GetForUser(userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN team_memberships ON team_memberships.team_id = projects.team_id").
		Where("team_memberships.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}
