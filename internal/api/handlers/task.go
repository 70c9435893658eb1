package handlers

import (
	"net/http"

	"taskforge-backend/internal/auth"
	"taskforge-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task and comment operations
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks handles GET /tasks
// @Summary List tasks of a project
// @Description Get the tasks of a project ordered for the board
// @Tags tasks
// @Produce json
// @Param projectId query string true "Project ID (UUID)"
// @Success 200 {array} service.TaskResponse "Tasks"
// @Failure 400 {object} ErrorResponse "Missing or invalid project ID"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project ID"})
		return
	}

	tasks, err := h.taskService.List(callerID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /tasks
// @Summary Create a task
// @Description Create a task at the end of its status column
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Created task"
// @Failure 400 {object} ErrorResponse "Missing title or unknown status/priority"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.Create(callerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PATCH /tasks/:taskId
// @Summary Update a task
// @Description Apply a partial update; a status change moves the task to the end of the new column
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} service.TaskResponse "Updated task"
// @Failure 400 {object} ErrorResponse "Unknown status or priority"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.Update(callerID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:taskId
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param taskId path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	if err := h.taskService.Delete(callerID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListComments handles GET /tasks/:taskId/comments
// @Summary List task comments
// @Description Get the comments of a task, oldest first
// @Tags tasks
// @Produce json
// @Param taskId path string true "Task ID (UUID)"
// @Success 200 {array} service.CommentResponse "Comments"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskId}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	comments, err := h.taskService.ListComments(callerID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /tasks/:taskId/comments
// @Summary Comment on a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID (UUID)"
// @Param comment body service.CreateCommentRequest true "Comment body"
// @Success 201 {object} service.CommentResponse "Created comment"
// @Failure 400 {object} ErrorResponse "Missing body"
// @Failure 403 {object} ErrorResponse "Not a member of the project's team"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskId}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.taskService.AddComment(callerID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
