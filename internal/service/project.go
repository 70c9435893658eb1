package service

import (
	"errors"
	"fmt"
	"time"

	"taskforge-backend/internal/database/models"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo repository.ProjectRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
	authorizer  *Authorizer
	validator   *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepositoryInterface, teamRepo repository.TeamRepositoryInterface, authorizer *Authorizer, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		authorizer:  authorizer,
		validator:   validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	TeamID      uuid.UUID `json:"teamId" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=2000"`
}

// ProjectResponse represents the response for project operations
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// Create creates a project in a team. Any member of the team may create
// projects; no role restriction applies.
func (s *ProjectService) Create(callerID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := s.teamRepo.GetByID(req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}

	if _, err := s.authorizer.RequireMember(callerID, req.TeamID); err != nil {
		return nil, err
	}

	project := &models.Project{
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.toResponse(project), nil
}

// List retrieves projects. With a team id the caller must be a member of
// that team and gets its projects; without one the caller gets all projects
// across their teams.
func (s *ProjectService) List(callerID uuid.UUID, teamID *uuid.UUID) ([]ProjectResponse, error) {
	var projects []models.Project
	var err error

	if teamID != nil {
		if _, err := s.teamRepo.GetByID(*teamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to look up team: %w", err)
		}
		if _, err := s.authorizer.RequireMember(callerID, *teamID); err != nil {
			return nil, err
		}
		projects, err = s.projectRepo.GetByTeamID(*teamID)
	} else {
		projects, err = s.projectRepo.GetForUser(callerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *s.toResponse(&projects[i]))
	}
	return responses, nil
}

func (s *ProjectService) toResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          project.ID,
		TeamID:      project.TeamID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
}
