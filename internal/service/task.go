package service

import (
	"errors"
	"fmt"
	"time"

	"taskforge-backend/internal/database/models"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"
	"taskforge-backend/internal/workflow"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for board tasks and their comments.
// Every operation requires the caller to be a member of the team owning the
// task's project.
type TaskService struct {
	taskRepo    repository.TaskRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	commentRepo repository.CommentRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	authorizer  *Authorizer
	workflow    *workflow.Config
	validator   *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepositoryInterface, projectRepo repository.ProjectRepositoryInterface, commentRepo repository.CommentRepositoryInterface, userRepo repository.UserRepositoryInterface, authorizer *Authorizer, wf *workflow.Config, validator *validator.Validate) *TaskService {
	if wf == nil {
		wf = workflow.Default()
	}
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		workflow:    wf,
		validator:   validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID   uuid.UUID           `json:"projectId" validate:"required"`
	Title       string              `json:"title" validate:"required,min=1,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Status      models.TaskStatus   `json:"status,omitempty"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	AssigneeID  *uuid.UUID          `json:"assigneeId,omitempty"`
}

// UpdateTaskRequest represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	AssigneeID  *uuid.UUID           `json:"assigneeId,omitempty"`
}

// CreateCommentRequest represents the request to comment on a task
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID          `json:"assignee_id,omitempty"`
	OrderIndex  int                 `json:"order_index"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// CommentResponse represents the response for comment operations
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	TaskID     uuid.UUID `json:"task_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  string    `json:"created_at"`
}

// List retrieves the tasks of a project, ordered for the board: order_index
// ascending within each status column.
func (s *TaskService) List(callerID, projectID uuid.UUID) ([]TaskResponse, error) {
	if _, err := s.requireProjectMember(callerID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *s.toResponse(&tasks[i]))
	}
	return responses, nil
}

// Create creates a task appended at the end of its status column
func (s *TaskService) Create(callerID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := s.requireProjectMember(callerID, req.ProjectID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = s.workflow.DefaultStatus
	}
	if !s.workflow.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTaskStatus, status)
	}

	priority := req.Priority
	if priority == "" {
		priority = s.workflow.DefaultPriority
	}
	if !s.workflow.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTaskPriority, priority)
	}

	task := &models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
	}
	if err := s.taskRepo.CreateAppend(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.toResponse(task), nil
}

// Update applies a partial update to a task. A status change is validated
// against the workflow set and moves the task to the end of the target
// column.
func (s *TaskService) Update(callerID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.getAuthorizedTask(callerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.NewValidationError("title", "title must not be empty")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !s.workflow.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTaskPriority, *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		if _, err := s.userRepo.GetByID(*req.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to look up assignee: %w", err)
		}
		task.AssigneeID = req.AssigneeID
	}

	if req.Status != nil && *req.Status != task.Status {
		if !s.workflow.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTaskStatus, *req.Status)
		}
		if err := s.taskRepo.MoveToStatus(task, *req.Status); err != nil {
			return nil, fmt.Errorf("failed to move task: %w", err)
		}
	} else {
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return s.toResponse(task), nil
}

// SetStatus is the dedicated status-transition operation the board's drag
// and drop uses; a plain wrapper over Update.
func (s *TaskService) SetStatus(callerID, taskID uuid.UUID, status models.TaskStatus) (*TaskResponse, error) {
	return s.Update(callerID, taskID, &UpdateTaskRequest{Status: &status})
}

// Delete removes a task. Deleting an unknown id is not found, never a
// silent success.
func (s *TaskService) Delete(callerID, taskID uuid.UUID) error {
	if _, err := s.getAuthorizedTask(callerID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListComments retrieves the comments of a task, oldest first
func (s *TaskService) ListComments(callerID, taskID uuid.UUID) ([]CommentResponse, error) {
	if _, err := s.getAuthorizedTask(callerID, taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *s.toCommentResponse(&comments[i]))
	}
	return responses, nil
}

// AddComment creates a comment on a task authored by the caller
func (s *TaskService) AddComment(callerID, taskID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("body", "body is required")
	}

	if _, err := s.getAuthorizedTask(callerID, taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: callerID,
		Body:     req.Body,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.toCommentResponse(comment), nil
}

// requireProjectMember resolves the project and checks the caller belongs
// to its team.
func (s *TaskService) requireProjectMember(callerID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}
	if _, err := s.authorizer.RequireMember(callerID, project.TeamID); err != nil {
		return nil, err
	}
	return project, nil
}

// getAuthorizedTask resolves the task and checks the caller belongs to the
// team owning its project.
func (s *TaskService) getAuthorizedTask(callerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}
	if _, err := s.requireProjectMember(callerID, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssigneeID:  task.AssigneeID,
		OrderIndex:  task.OrderIndex,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *TaskService) toCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
	if comment.Author != nil {
		resp.AuthorName = comment.Author.Name
	}
	return resp
}
