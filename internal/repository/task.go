package repository

import (
	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateAppend inserts the task at the end of its status column: the
// order_index is computed and the row inserted inside one transaction so the
// column stays densely appended under concurrent creates.
func (r *TaskRepository) CreateAppend(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var next int
		err := tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ?", task.ProjectID, task.Status).
			Select("COALESCE(MAX(order_index), -1) + 1").
			Scan(&next).Error
		if err != nil {
			return err
		}
		task.OrderIndex = next
		return tx.Create(task).Error
	})
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByProjectID retrieves all tasks of a project ordered by order_index
// within each status column, creation time as tiebreaker.
func (r *TaskRepository) GetByProjectID(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("order_index ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// Update persists changes to a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// MoveToStatus updates the task's status and appends it at the end of the
// target column in a single transaction.
func (r *TaskRepository) MoveToStatus(task *models.Task, status models.TaskStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var next int
		err := tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ?", task.ProjectID, status).
			Select("COALESCE(MAX(order_index), -1) + 1").
			Scan(&next).Error
		if err != nil {
			return err
		}
		task.Status = status
		task.OrderIndex = next
		return tx.Save(task).Error
	})
}

// Delete removes a task. Returns gorm.ErrRecordNotFound when no row matched
// so callers can keep the strict not-found contract.
func (r *TaskRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
